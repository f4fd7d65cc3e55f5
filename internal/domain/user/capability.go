package user

// Action names an operation a caller may attempt against the marketplace.
type Action string

const (
	ActionApproveJourney      Action = "journey.approve"
	ActionRejectJourney       Action = "journey.reject"
	ActionRequestInspection   Action = "inspection.request"
	ActionScheduleInspection  Action = "inspection.schedule"
	ActionCompleteInspection  Action = "inspection.complete"
	ActionCreateListing       Action = "listing.create"
	ActionManageListing       Action = "listing.manage"
	ActionPurchaseListing     Action = "listing.purchase"
	ActionCancelTransaction   Action = "transaction.cancel"
	ActionRaiseDispute        Action = "dispute.raise"
	ActionResolveDispute      Action = "dispute.resolve"
	ActionAdministerDispute   Action = "dispute.administer"
	ActionViewAnyTransaction  Action = "transaction.view_any"
)

// capabilities is an explicit role-to-action table. Ownership checks
// (listing owner, transaction party) remain with the use cases since they
// need entity state; this table answers only the role half of the question.
var capabilities = map[Action][]Role{
	ActionApproveJourney:     {RoleCVA, RoleAdmin},
	ActionRejectJourney:      {RoleCVA, RoleAdmin},
	ActionRequestInspection:  {RoleCVA, RoleAdmin},
	ActionScheduleInspection: {RoleEVOwner, RoleAdmin},
	ActionCompleteInspection: {RoleCVA, RoleAdmin},
	ActionCreateListing:      {RoleEVOwner, RoleAdmin},
	ActionManageListing:      {RoleEVOwner, RoleAdmin},
	ActionPurchaseListing:    {RoleBuyer, RoleAdmin},
	// transaction.cancel is the staff override; buyer and seller cancel
	// through their party relationship, not through a capability.
	ActionCancelTransaction:  {RoleCVA, RoleAdmin},
	ActionRaiseDispute:       {RoleEVOwner, RoleBuyer, RoleAdmin},
	ActionResolveDispute:     {RoleCVA, RoleAdmin},
	ActionAdministerDispute:  {RoleCVA, RoleAdmin},
	ActionViewAnyTransaction: {RoleCVA, RoleAdmin},
}

func CanPerform(r Role, a Action) bool {
	for _, allowed := range capabilities[a] {
		if r == allowed {
			return true
		}
	}
	return false
}
