// Package perm holds the static role-permission defaults used to prefill
// the staff form. The backend authorization check stays with the API
// middleware; this table only seeds the form state.
package perm

// ModulePermission is one row of per-module CRUD capability flags.
type ModulePermission struct {
	Module string `json:"module"`
	Create bool   `json:"create"`
	Read   bool   `json:"read"`
	Update bool   `json:"update"`
	Delete bool   `json:"delete"`
}

// Modules is the fixed module list, in display order.
var Modules = []string{
	"Rooms",
	"Guests",
	"Bookings",
	"Restaurant",
	"Laundry",
	"Events",
	"Gym",
	"Pool",
	"Reports",
}

// Known role keys.
const (
	RoleAdmin        = "admin"
	RoleManager      = "manager"
	RoleReceptionist = "receptionist"
	RoleHousekeeping = "housekeeping"
	RoleAccountant   = "accountant"
)

// flags maps role -> module -> [create, read, update, delete].
// Modules missing from a role's map get the read-only default.
var flags = map[string]map[string][4]bool{
	RoleAdmin: {
		"Rooms":      {true, true, true, true},
		"Guests":     {true, true, true, true},
		"Bookings":   {true, true, true, true},
		"Restaurant": {true, true, true, true},
		"Laundry":    {true, true, true, true},
		"Events":     {true, true, true, true},
		"Gym":        {true, true, true, true},
		"Pool":       {true, true, true, true},
		"Reports":    {true, true, true, true},
	},
	RoleManager: {
		"Rooms":      {true, true, true, false},
		"Guests":     {true, true, true, false},
		"Bookings":   {true, true, true, true},
		"Restaurant": {true, true, true, false},
		"Laundry":    {true, true, true, false},
		"Events":     {true, true, true, true},
		"Gym":        {true, true, true, false},
		"Pool":       {true, true, true, false},
		"Reports":    {false, true, false, false},
	},
	RoleReceptionist: {
		"Rooms":    {false, true, true, false},
		"Guests":   {true, true, true, false},
		"Bookings": {true, true, true, false},
		"Laundry":  {true, true, false, false},
		"Events":   {true, true, false, false},
		"Gym":      {true, true, false, false},
		"Pool":     {true, true, false, false},
	},
	RoleHousekeeping: {
		"Rooms":   {false, true, true, false},
		"Laundry": {true, true, true, false},
	},
	RoleAccountant: {
		"Bookings":   {false, true, false, false},
		"Restaurant": {false, true, false, false},
		"Laundry":    {false, true, false, false},
		"Events":     {false, true, false, false},
		"Gym":        {false, true, false, false},
		"Pool":       {false, true, false, false},
		"Reports":    {true, true, true, false},
	},
}

// DefaultsFor returns the ordered capability list for a role.
// Unknown roles fall back to the universal read-only set.
func DefaultsFor(role string) []ModulePermission {
	roleFlags := flags[role]
	perms := make([]ModulePermission, 0, len(Modules))
	for _, m := range Modules {
		p := ModulePermission{Module: m, Read: true}
		if f, ok := roleFlags[m]; ok {
			p.Create, p.Read, p.Update, p.Delete = f[0], f[1], f[2], f[3]
		}
		perms = append(perms, p)
	}
	return perms
}

// Roles lists the known role keys in display order.
func Roles() []string {
	return []string{RoleAdmin, RoleManager, RoleReceptionist, RoleHousekeeping, RoleAccountant}
}
