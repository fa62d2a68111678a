package models

import (
	"fmt"

	"github.com/dmitrijs2005/sitereg/internal/common"
)

// InstallationStatus is the lifecycle tag of an installation.
type InstallationStatus string

const (
	InstallationPending   InstallationStatus = "pending"
	InstallationCompleted InstallationStatus = "completed"
	InstallationCancelled InstallationStatus = "cancelled"
)

// InstallationStatuses lists the allowed tags in display order.
var InstallationStatuses = []InstallationStatus{InstallationPending, InstallationCompleted, InstallationCancelled}

func (s InstallationStatus) Valid() bool {
	switch s {
	case InstallationPending, InstallationCompleted, InstallationCancelled:
		return true
	}
	return false
}

// ParseInstallationStatus rejects anything outside the enumerated set.
func ParseInstallationStatus(s string) (InstallationStatus, error) {
	st := InstallationStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: installation status %q", common.ErrInvalidStatus, s)
	}
	return st, nil
}

// AccountStatus is the lifecycle tag of a mobility account.
type AccountStatus string

const (
	AccountActive   AccountStatus = "active"
	AccountInactive AccountStatus = "inactive"
)

var AccountStatuses = []AccountStatus{AccountActive, AccountInactive}

func (s AccountStatus) Valid() bool {
	return s == AccountActive || s == AccountInactive
}

// Toggled flips active and inactive.
func (s AccountStatus) Toggled() AccountStatus {
	if s == AccountActive {
		return AccountInactive
	}
	return AccountActive
}

func ParseAccountStatus(s string) (AccountStatus, error) {
	st := AccountStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: account status %q", common.ErrInvalidStatus, s)
	}
	return st, nil
}
