package nexus

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/mulgadc/trunkd/trunkd/vlan"
)

const allowedVlanLine = "switchport trunk allowed vlan"
const spanUsageLine = "Total ports*vlans"

// dataText extracts the text body of the <data> element from an rpc-reply.
// NX-OS returns the running config as free text inside <data>, so the XML
// layer only locates the element; the payload itself is scanned line-wise.
func dataText(reply string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(reply))
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", fmt.Errorf("no <data> element in reply: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "data" {
			continue
		}
		var body struct {
			Text string `xml:",chardata"`
		}
		if err := dec.DecodeElement(&body, &start); err != nil {
			return "", fmt.Errorf("decode <data> element: %w", err)
		}
		return body.Text, nil
	}
}

// ParseAllowedVlans scans a show-running-config-interface reply for the
// trunk allowed-vlan line and expands it into a sorted list of VLAN ids.
// Unknown lines are ignored; if several allowed-vlan lines appear the last
// one wins; a missing line yields an empty list.
func ParseAllowedVlans(reply string) ([]int, error) {
	text, err := dataText(reply)
	if err != nil {
		return nil, err
	}

	var expr string
	var found bool
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, allowedVlanLine) {
			_, after, _ := strings.Cut(line, allowedVlanLine)
			expr = strings.TrimSpace(after)
			found = true
		}
	}
	if !found {
		return nil, nil
	}
	return vlan.Expand(expr)
}

// ParseSpanUsage extracts the spanning-tree logical ports*vlans usage count
// from a show-spanning-tree-internal reply.
func ParseSpanUsage(reply string) (string, error) {
	text, err := dataText(reply)
	if err != nil {
		return "", err
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, spanUsageLine) {
			i := strings.LastIndex(line, ":")
			if i < 0 {
				continue
			}
			return strings.TrimSpace(line[i+1:]), nil
		}
	}
	return "", fmt.Errorf("no %q line in reply", spanUsageLine)
}
