package enums

// DeviceStatus reports whether a deployed device is online.
type DeviceStatus string

const (
	DeviceStatusActive      DeviceStatus = "active"
	DeviceStatusInactive    DeviceStatus = "inactive"
	DeviceStatusMaintenance DeviceStatus = "maintenance"
)

var deviceStatuses = set[DeviceStatus]{
	DeviceStatusActive,
	DeviceStatusInactive,
	DeviceStatusMaintenance,
}

func (d DeviceStatus) String() string { return string(d) }

// IsValid reports whether d is a known DeviceStatus.
func (d DeviceStatus) IsValid() bool { return deviceStatuses.has(d) }

// ParseDeviceStatus accepts the wire value, ignoring surrounding space and case.
func ParseDeviceStatus(value string) (DeviceStatus, error) {
	return deviceStatuses.parse("device status", value)
}
