package screens

import (
	"strconv"

	"github.com/five82/mobileinfo/internal/probe"
	"github.com/five82/mobileinfo/internal/rows"
)

const interfaceDocs = "https://pkg.go.dev/net#Interface"

// Network lists the connectivity state and every interface with its counters.
func (b *Builder) Network(s probe.Snapshot) []rows.Row {
	out := []rows.Row{rows.Header{ID: "network", Text: "Connectivity"}}
	out = errorRow(out, s, probe.ProbeNetwork)

	n := s.Network
	summary := b.in.ExtractFields(&n).Without("Interfaces")
	out = attributeRows(out, "network", summary)

	for _, iface := range n.Interfaces {
		out = b.networkInterface(out, iface)
	}
	return out
}

func (b *Builder) networkInterface(out []rows.Row, iface probe.Interface) []rows.Row {
	prefix := "iface/" + iface.Name
	out = append(out, rows.Header{ID: prefix, Text: iface.Name, Link: interfaceDocs})

	m := b.in.ExtractFields(&iface).Without("Name")
	for _, counter := range []string{"RxBytes", "RxPackets", "TxBytes", "TxPackets"} {
		m = m.Without(counter)
	}
	m = m.With("Flags", b.in.FlagNames(probe.NetFlagsType, iface.Flags, "^Flag(.*)$"))
	if iface.HardwareAddr == "" {
		m = m.Without("HardwareAddr")
	}
	out = attributeRows(out, prefix, m)

	return append(out, rows.Grid{
		ID: prefix + "/counters",
		Pairs: []rows.Pair{
			{Key: "RX", Value: strconv.FormatUint(iface.RxBytes, 10) + " B"},
			{Key: "RX pkts", Value: strconv.FormatUint(iface.RxPackets, 10)},
			{Key: "TX", Value: strconv.FormatUint(iface.TxBytes, 10) + " B"},
			{Key: "TX pkts", Value: strconv.FormatUint(iface.TxPackets, 10)},
		},
	})
}
