// README: Trip record as delivered by the upstream trip feed, plus the trimmed per-driver view.
package trip

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"

	"fleetreport/internal/types"
)

var ErrSourceUnavailable = errors.New("trip source unavailable")

// CashFlag keeps the upstream isCash value tri-state: only JSON true/false are trusted.
type CashFlag int8

const (
	FlagUnknown CashFlag = iota
	FlagCash
	FlagNonCash
)

func (f CashFlag) IsCash() bool    { return f == FlagCash }
func (f CashFlag) IsNonCash() bool { return f == FlagNonCash }

// Bool returns nil for FlagUnknown.
func (f CashFlag) Bool() *bool {
	if f == FlagUnknown {
		return nil
	}
	v := f == FlagCash
	return &v
}

// UnmarshalJSON never fails; strings, numbers and null all map to FlagUnknown.
func (f *CashFlag) UnmarshalJSON(b []byte) error {
	switch string(bytes.TrimSpace(b)) {
	case "true":
		*f = FlagCash
	case "false":
		*f = FlagNonCash
	default:
		*f = FlagUnknown
	}
	return nil
}

func (f CashFlag) MarshalJSON() ([]byte, error) {
	switch f {
	case FlagCash:
		return []byte("true"), nil
	case FlagNonCash:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// Record is one billed ride. BilledAmount and IsCashRaw hold whatever the feed sent (number, string, null...).
type Record struct {
	DriverID            types.ID `json:"driverID"`
	IsCash              CashFlag `json:"isCash"`
	IsCashRaw           any      `json:"-"`
	BilledAmount        any      `json:"billedAmount"`
	DriverName          string   `json:"driverName,omitempty"`
	DriverEmail         string   `json:"driverEmail,omitempty"`
	DriverPhone         string   `json:"driverPhone,omitempty"`
	UserName            string   `json:"userName,omitempty"`
	DateCreated         string   `json:"dateCreated,omitempty"`
	PickupAddress       string   `json:"pickupAddress,omitempty"`
	DestinationAddress  string   `json:"destinationAddress,omitempty"`
	VehiclePlate        string   `json:"vehiclePlate,omitempty"`
	VehicleManufacturer string   `json:"vehicleManufacturer,omitempty"`
}

// UnmarshalJSON keeps the decoded isCash value next to its strict flag.
func (r *Record) UnmarshalJSON(b []byte) error {
	type plain Record
	aux := struct {
		*plain
		IsCash json.RawMessage `json:"isCash"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	return r.setCash(aux.IsCash)
}

func (r *Record) setCash(raw []byte) error {
	r.IsCash, r.IsCashRaw = FlagUnknown, nil
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, &r.IsCashRaw); err != nil {
		return err
	}
	return r.IsCash.UnmarshalJSON(raw)
}

// CashValue is the isCash value as the feed sent it. Records built in code fall back to the flag.
func (r Record) CashValue() any {
	if r.IsCashRaw != nil {
		return r.IsCashRaw
	}
	if b := r.IsCash.Bool(); b != nil {
		return *b
	}
	return nil
}

// PaidInCash reports whether isCash is truthy: false, 0, NaN, "" and null are not, anything else is.
func (r Record) PaidInCash() bool {
	switch v := r.CashValue().(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0 && !math.IsNaN(v)
	case json.Number:
		f, err := v.Float64()
		return err != nil || f != 0
	case string:
		return v != ""
	default:
		return true
	}
}

// VehicleKey returns the plate-manufacturer key, or "" when either part is missing.
func (r Record) VehicleKey() string {
	if r.VehiclePlate == "" || r.VehicleManufacturer == "" {
		return ""
	}
	return r.VehiclePlate + "-" + r.VehicleManufacturer
}

// View is the trimmed trip kept in a driver's history.
type View struct {
	User        string   `json:"user"`
	Created     string   `json:"created"`
	Pickup      string   `json:"pickup"`
	Destination string   `json:"destination"`
	Billed      any      `json:"billed"`
	IsCash      any      `json:"isCash"`
}

func (r Record) View() View {
	return View{
		User:        r.UserName,
		Created:     r.DateCreated,
		Pickup:      r.PickupAddress,
		Destination: r.DestinationAddress,
		Billed:      r.BilledAmount,
		IsCash:      r.CashValue(),
	}
}
