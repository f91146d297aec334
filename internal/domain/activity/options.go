package activity

// ListActivityOptions provides filtering options for listing activity.
type ListActivityOptions struct {
	CompanyID     *string
	ApplicationID *string
	ActivityType  *ActivityType
	Limit         int
	Offset        int
}
