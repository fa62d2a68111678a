package models

// InstallationCounts tallies installations per status.
type InstallationCounts struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

func CountInstallations(list []Installation) InstallationCounts {
	c := InstallationCounts{Total: len(list)}
	for _, i := range list {
		switch i.Status {
		case InstallationPending:
			c.Pending++
		case InstallationCompleted:
			c.Completed++
		case InstallationCancelled:
			c.Cancelled++
		}
	}
	return c
}

// AccountCounts tallies mobility accounts per status.
type AccountCounts struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

func CountAccounts(list []MobilityAccount) AccountCounts {
	c := AccountCounts{Total: len(list)}
	for _, a := range list {
		switch a.Status {
		case AccountActive:
			c.Active++
		case AccountInactive:
			c.Inactive++
		}
	}
	return c
}
