package env

import (
	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

// AppID scopes the machine ID to this application.
const AppID = "uart.go"

// MachineID retrieves the unique ID identifying the machine.
// It's empty if the machine ID is not available.
func MachineID() string {
	id, err := machineid.ProtectedID(AppID)
	if err != nil {
		glog.V(1).Infof("machine id unavailable: %v", err)
		return ""
	}
	return id
}
