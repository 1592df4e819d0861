package models

// LeadStatus is the sales pipeline stage of a lead.
type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "new"
	LeadStatusContacted   LeadStatus = "contacted"
	LeadStatusQualified   LeadStatus = "qualified"
	LeadStatusProposal    LeadStatus = "proposal"
	LeadStatusNegotiation LeadStatus = "negotiation"
	LeadStatusClosed      LeadStatus = "closed"
	LeadStatusLost        LeadStatus = "lost"
)

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified,
		LeadStatusProposal, LeadStatusNegotiation, LeadStatusClosed, LeadStatusLost:
		return true
	}
	return false
}

// Lead is a prospective customer tracked through the pipeline.
// Budget, Timeline and Source are optional; scoring treats absent
// values as zero contribution. Probability is a percentage in [0,100]
// maintained by producers.
type Lead struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Email             string           `json:"email"`
	Phone             string           `json:"phone"`
	Company           string           `json:"company"`
	Status            LeadStatus       `json:"status"`
	Source            string           `json:"source,omitempty"`
	Budget            float64          `json:"budget,omitempty"`
	Timeline          string           `json:"timeline,omitempty"`
	Probability       int              `json:"probability"`
	ExpectedCloseDate string           `json:"expectedCloseDate"`
	Notes             string           `json:"notes"`
	LastContact       string           `json:"lastContact"`
	CreatedAt         string           `json:"createdAt"`
	UpdatedAt         string           `json:"updatedAt"`
	Attachments       []FileAttachment `json:"attachments,omitempty"`
}
