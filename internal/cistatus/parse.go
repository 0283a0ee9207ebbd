package cistatus

import "encoding/json"

type ghPRView struct {
	Number            int    `json:"number"`
	State             string `json:"state"`
	URL               string `json:"url"`
	StatusCheckRollup []struct {
		Conclusion string `json:"conclusion"`
		State      string `json:"state"`
	} `json:"statusCheckRollup"`
}

func parseGHStatus(raw string) Status {
	var v ghPRView
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return Status{}
	}
	status := Status{Found: true, Number: v.Number, State: v.State, URL: v.URL}
	status.ChecksState = aggregateGHChecks(v.StatusCheckRollup)
	return status
}

func aggregateGHChecks(checks []struct {
	Conclusion string `json:"conclusion"`
	State      string `json:"state"`
}) string {
	if len(checks) == 0 {
		return ""
	}
	sawFailure := false
	sawPending := false
	for _, c := range checks {
		switch c.Conclusion {
		case "failure", "cancelled", "timed_out":
			sawFailure = true
		case "":
			if c.State == "" || c.State == "PENDING" || c.State == "IN_PROGRESS" {
				sawPending = true
			}
		}
	}
	switch {
	case sawFailure:
		return "failure"
	case sawPending:
		return "pending"
	default:
		return "success"
	}
}

type glabMRView struct {
	IID    int    `json:"iid"`
	State  string `json:"state"`
	WebURL string `json:"web_url"`
}

func parseGlabStatus(raw string) Status {
	var v glabMRView
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return Status{}
	}
	return Status{Found: true, Number: v.IID, State: v.State, URL: v.WebURL}
}
