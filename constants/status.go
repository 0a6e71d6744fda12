package constants

// User role
const (
	RoleCustomer = 0
	RoleAdmin    = 1
	RoleSubLabel = 2
	RoleArtist   = 3
)

// User status
const (
	UserStatusActive   = 1
	UserStatusInactive = 0
)

// Subject kind cho ledger
const (
	SubjectKindArtist   = "artist"
	SubjectKindSubLabel = "sub_label"
)
