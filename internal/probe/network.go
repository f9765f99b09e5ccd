package probe

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/net/nettest"
)

// DefaultProcNetDevPath holds per-interface counters on Linux.
const DefaultProcNetDevPath = "/proc/net/dev"

// Network states, named after the connectivity callbacks they replace.
const (
	NetworkAvailable   = "Available"
	NetworkLosing      = "Losing"
	NetworkLost        = "Lost"
	NetworkUnavailable = "Unavailable"
)

// Interface is one network interface with its traffic counters.
type Interface struct {
	Name         string
	Index        int
	MTU          int
	HardwareAddr string
	Flags        net.Flags
	Addrs        []string
	RxBytes      uint64
	RxPackets    uint64
	TxBytes      uint64
	TxPackets    uint64
}

// Network is the connectivity picture at one instant.
type Network struct {
	State       string
	Routed      string
	IPv4        bool
	IPv6        bool
	Interfaces  []Interface
	Transitions int
}

type counters struct {
	rxBytes, rxPackets, txBytes, txPackets uint64
}

// NetworkReader lists interfaces and tracks the connectivity state between
// reads.
type NetworkReader struct {
	mu          sync.Mutex
	procNetDev  string
	list        func() ([]Interface, error)
	routed      func() string
	prevState   string
	transitions int
}

// NewNetworkReader returns a reader using the host's interfaces. An empty
// procNetDev uses DefaultProcNetDevPath.
func NewNetworkReader(procNetDev string) *NetworkReader {
	if procNetDev == "" {
		procNetDev = DefaultProcNetDevPath
	}
	return &NetworkReader{
		procNetDev: procNetDev,
		list:       systemInterfaces,
		routed:     routedInterface,
	}
}

// Read returns the current network state. Missing counters are not an error.
func (r *NetworkReader) Read() (Network, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ifaces, err := r.list()
	if err != nil {
		return Network{}, fmt.Errorf("list interfaces: %w", err)
	}
	if stats, err := readProcNetDev(r.procNetDev); err == nil {
		for i := range ifaces {
			if c, ok := stats[ifaces[i].Name]; ok {
				ifaces[i].RxBytes = c.rxBytes
				ifaces[i].RxPackets = c.rxPackets
				ifaces[i].TxBytes = c.txBytes
				ifaces[i].TxPackets = c.txPackets
			}
		}
	}
	sort.Slice(ifaces, func(i, j int) bool { return ifaces[i].Index < ifaces[j].Index })

	state := r.nextState(connected(ifaces))
	if state != r.prevState {
		r.transitions++
	}
	r.prevState = state

	return Network{
		State:       state,
		Routed:      r.routed(),
		IPv4:        nettest.SupportsIPv4(),
		IPv6:        nettest.SupportsIPv6(),
		Interfaces:  ifaces,
		Transitions: r.transitions,
	}, nil
}

// nextState moves through Available → Losing → Lost when connectivity drops,
// and straight back to Available when it returns.
func (r *NetworkReader) nextState(up bool) string {
	if up {
		return NetworkAvailable
	}
	switch r.prevState {
	case NetworkAvailable:
		return NetworkLosing
	case NetworkLosing, NetworkLost:
		return NetworkLost
	default:
		return NetworkUnavailable
	}
}

// connected reports whether a non-loopback interface is up with an address.
func connected(ifaces []Interface) bool {
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		if len(iface.Addrs) > 0 {
			return true
		}
	}
	return false
}

func systemInterfaces() ([]Interface, error) {
	nifs, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	out := make([]Interface, 0, len(nifs))
	for _, nif := range nifs {
		iface := Interface{
			Name:         nif.Name,
			Index:        nif.Index,
			MTU:          nif.MTU,
			HardwareAddr: nif.HardwareAddr.String(),
			Flags:        nif.Flags,
		}
		if addrs, err := nif.Addrs(); err == nil {
			for _, a := range addrs {
				iface.Addrs = append(iface.Addrs, a.String())
			}
		}
		out = append(out, iface)
	}
	return out, nil
}

func routedInterface() string {
	for _, network := range []string{"ip4", "ip6"} {
		if nif, err := nettest.RoutedInterface(network, net.FlagUp|net.FlagBroadcast); err == nil {
			return nif.Name
		}
	}
	return ""
}

// readProcNetDev parses /proc/net/dev into counters keyed by interface.
func readProcNetDev(path string) (map[string]counters, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	result := make(map[string]counters)
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if lineNum <= 2 {
			continue
		}
		name, c, err := parseNetDevLine(scanner.Text())
		if err != nil {
			continue
		}
		result[name] = c
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return result, nil
}

// parseNetDevLine parses "iface: rx bytes packets ... tx bytes packets ...".
func parseNetDevLine(line string) (string, counters, error) {
	name, rest, ok := strings.Cut(line, ":")
	if !ok {
		return "", counters{}, fmt.Errorf("no colon separator")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", counters{}, fmt.Errorf("empty interface name")
	}
	fields := strings.Fields(rest)
	if len(fields) < 16 {
		return "", counters{}, fmt.Errorf("insufficient fields: got %d, need 16", len(fields))
	}
	var values [16]uint64
	for i := range values {
		v, err := strconv.ParseUint(fields[i], 10, 64)
		if err != nil {
			return "", counters{}, fmt.Errorf("parsing field %d: %w", i, err)
		}
		values[i] = v
	}
	return name, counters{
		rxBytes:   values[0],
		rxPackets: values[1],
		txBytes:   values[8],
		txPackets: values[9],
	}, nil
}
