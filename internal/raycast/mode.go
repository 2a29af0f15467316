package raycast

import "fmt"

type ExecMode int

const (
	HostOnly ExecMode = iota
	DeviceAccelerated
)

func (m ExecMode) String() string {
	switch m {
	case HostOnly:
		return "host"
	case DeviceAccelerated:
		return "device"
	default:
		return fmt.Sprintf("ExecMode(%d)", int(m))
	}
}

func ParseExecMode(s string) (ExecMode, error) {
	switch s {
	case "host", "cpu", "":
		return HostOnly, nil
	case "device", "gpu", "cuda":
		return DeviceAccelerated, nil
	default:
		return 0, fmt.Errorf("unknown exec mode: %s", s)
	}
}
