package ctdf

type TransportType string

//goland:noinspection GoUnusedConst
const (
	TransportTypeTrain   TransportType = "Train"
	TransportTypeBus     TransportType = "Bus"
	TransportTypePlane   TransportType = "Plane"
	TransportTypeShip    TransportType = "Ship"
	TransportTypeUnknown TransportType = "UNKNOWN"
)

func (t TransportType) Valid() bool {
	switch t {
	case TransportTypeTrain, TransportTypeBus, TransportTypePlane, TransportTypeShip:
		return true
	default:
		return false
	}
}
