// Package compliance validates a merged contract against the fixed
// checklist of mandatory charter party clause categories.
package compliance

import "github.com/Ayush-Rawat-9/Charter-Party/model"

// Requirement is one mandatory checklist topic. The checklist is static
// process-wide configuration, not derived from the document.
type Requirement struct {
	ItemID      string
	Category    string
	Requirement string
	Impact      string // default impact if the generation step omits one
}

// Checklist is the fixed set of mandatory requirements: six topics in
// each of the three categories.
var Checklist = []Requirement{
	// Commercial
	{"com-vessel", model.CategoryCommercial, "Vessel identification and specifications", model.ImpactCritical},
	{"com-cargo", model.CategoryCommercial, "Cargo description and quantity", model.ImpactCritical},
	{"com-ports", model.CategoryCommercial, "Loading/discharge ports and laycan", model.ImpactCritical},
	{"com-freight", model.CategoryCommercial, "Freight rate and payment terms", model.ImpactCritical},
	{"com-demurrage", model.CategoryCommercial, "Demurrage/despatch provisions", model.ImpactHigh},
	{"com-laytime", model.CategoryCommercial, "Laytime calculations and notice requirements", model.ImpactHigh},

	// Legal
	{"leg-law", model.CategoryLegal, "Governing law and jurisdiction", model.ImpactCritical},
	{"leg-arbitration", model.CategoryLegal, "Arbitration and dispute resolution", model.ImpactCritical},
	{"leg-force-majeure", model.CategoryLegal, "Force majeure provisions", model.ImpactHigh},
	{"leg-liability", model.CategoryLegal, "Liability and indemnity clauses", model.ImpactHigh},
	{"leg-insurance", model.CategoryLegal, "Insurance requirements", model.ImpactHigh},
	{"leg-termination", model.CategoryLegal, "Termination and cancellation rights", model.ImpactMedium},

	// Operational
	{"ops-nor", model.CategoryOperational, "Notice of readiness procedures", model.ImpactHigh},
	{"ops-bunkering", model.CategoryOperational, "Bunkering and deviation rights", model.ImpactMedium},
	{"ops-subchartering", model.CategoryOperational, "Sub-chartering permissions", model.ImpactMedium},
	{"ops-agency", model.CategoryOperational, "Agency and port operations", model.ImpactMedium},
	{"ops-documentation", model.CategoryOperational, "Documentation requirements", model.ImpactMedium},
	{"ops-environment", model.CategoryOperational, "Environmental and safety standards", model.ImpactHigh},
}

// checklistItem returns the requirement definition for an item ID.
func checklistItem(itemID string) *Requirement {
	for i := range Checklist {
		if Checklist[i].ItemID == itemID {
			return &Checklist[i]
		}
	}
	return nil
}
