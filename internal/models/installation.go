// Package models defines the records the portal stores and serves:
// installations, mobility accounts and installation attachments.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Installation is one site registration with its technical and
// scheduling metadata.
type Installation struct {
	ID                   string             `json:"id"`
	IntersectionName     string             `json:"intersection_name"`
	EndUser              string             `json:"end_user"`
	Distributor          string             `json:"distributor"`
	CabinetType          string             `json:"cabinet_type"`
	TLSConnection        string             `json:"tls_connection"`
	DetectionIO          string             `json:"detection_io"`
	PhasingFiles         FileNames          `json:"phasing_files"`
	TimingFiles          FileNames          `json:"timing_files"`
	ContactName          string             `json:"contact_name"`
	ContactEmail         string             `json:"contact_email"`
	ContactPhone         string             `json:"contact_phone"`
	EstimatedInstallDate Date               `json:"estimated_install_date"`
	Status               InstallationStatus `json:"status"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
}

// SearchFields are the values the dashboard search matches against.
func (i Installation) SearchFields() []string {
	return []string{i.IntersectionName, i.EndUser, i.ContactName, string(i.Status)}
}

func (i Installation) StatusTag() string {
	return string(i.Status)
}

// FileNames holds uploaded file names. It is stored as a JSON array.
type FileNames []string

func (f FileNames) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(f))
}

func (f FileNames) Value() (driver.Value, error) {
	b, err := f.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (f *FileNames) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*f = FileNames{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("cannot scan %T into file names", src)
	}
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return fmt.Errorf("decode file names: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	*f = names
	return nil
}
