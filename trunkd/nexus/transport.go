package nexus

import (
	"fmt"
	"net"
	"time"

	"github.com/Juniper/go-netconf/netconf"
	"golang.org/x/crypto/ssh"
)

// Session is the slice of a NETCONF session the driver needs. The
// production implementation wraps go-netconf over SSH; tests substitute a
// recording mock.
type Session interface {
	// EditConfig applies a <config> payload to the running datastore.
	EditConfig(config string) error
	// Get issues a <get> with a subtree filter and returns the raw reply.
	Get(filter string) (string, error)
	// Close sends close-session and tears down the transport.
	Close() error
}

// Dialer opens a NETCONF session to a switch. Factored out so driver tests
// can run against a mock session without a real switch.
type Dialer func(p Params) (Session, error)

const sshPort = "22"

// deviceProfile names the NX-OS personality of the peer. The
// exec-configure wrapping it implies lives in the snippet templates, so the
// name survives only in session logs.
const deviceProfile = "nexus"

// DialNETCONF opens a NETCONF-over-SSHv2 session to the switch using
// password authentication.
func DialNETCONF(p Params) (Session, error) {
	sshConfig := &ssh.ClientConfig{
		User:            p.Username,
		Auth:            []ssh.AuthMethod{ssh.Password(p.Password)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         30 * time.Second,
	}

	sess, err := netconf.DialSSH(net.JoinHostPort(p.Host, sshPort), sshConfig)
	if err != nil {
		return nil, err
	}
	return &netconfSession{sess: sess}, nil
}

// netconfSession adapts a go-netconf session to the Session interface,
// reproducing the edit-config and subtree-get framing the switch expects.
type netconfSession struct {
	sess *netconf.Session
}

func (s *netconfSession) EditConfig(config string) error {
	rpc := fmt.Sprintf("<edit-config><target><running/></target>%s</edit-config>", config)
	_, err := s.sess.Exec(netconf.RawMethod(rpc))
	return err
}

func (s *netconfSession) Get(filter string) (string, error) {
	rpc := fmt.Sprintf(`<get><filter type="subtree">%s</filter></get>`, filter)
	reply, err := s.sess.Exec(netconf.RawMethod(rpc))
	if err != nil {
		return "", err
	}
	return reply.RawReply, nil
}

func (s *netconfSession) Close() error {
	return s.sess.Close()
}
