package forms

import "slices"

// Other is the escape value of every enumerated installation field. When
// it is chosen the matching *_other field carries the real value.
const Other = "Other"

// Options are the choices offered for the enumerated installation fields.
type Options struct {
	Distributors   []string `json:"distributors"`
	CabinetTypes   []string `json:"cabinet_types"`
	TLSConnections []string `json:"tls_connections"`
	DetectionIO    []string `json:"detection_io"`
}

var defaultOptions = Options{
	Distributors: []string{
		"Orange Traffic", "Southwest Traffic Systems", "Texas Highway Products", "ITS", "CTC",
		"General Highway Products", "General Traffic Controls", "Marlin", "Utilicom", "TS&L",
		"Swarco California", "Swarco PNW", "TAPCO", "JTB", "HighAngle", "Paradigm", "TCC", "TSC",
		"Blackstar", "Direct", Other,
	},
	CabinetTypes: []string{
		"NEMA TS1", "NEMA TS2", "332", "335", "325i", "336", "332 D", "ATC", "Type B", "P44", "ITS", Other,
	},
	TLSConnections: []string{
		"NTCIP", "SDLC", "C1/C4 Harness", "DB25 Spade Cables", "None", Other,
	},
	DetectionIO: []string{
		"DB37 to Spades", "SDLC - 15 Pin", "SDLC 25 to 15 Pin", "NTCIP", Other,
	},
}

// DefaultOptions returns a copy of the built-in option lists.
func DefaultOptions() Options {
	return Options{
		Distributors:   slices.Clone(defaultOptions.Distributors),
		CabinetTypes:   slices.Clone(defaultOptions.CabinetTypes),
		TLSConnections: slices.Clone(defaultOptions.TLSConnections),
		DetectionIO:    slices.Clone(defaultOptions.DetectionIO),
	}
}

// list maps the option validation parameter to its list.
func (o Options) list(name string) []string {
	switch name {
	case "distributor":
		return o.Distributors
	case "cabinet_type":
		return o.CabinetTypes
	case "tls_connection":
		return o.TLSConnections
	case "detection_io":
		return o.DetectionIO
	}
	return nil
}
