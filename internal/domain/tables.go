package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	&SysOpr{},
	&SysOprLog{},
	// Rooms
	&RoomType{},
	&Room{},
	// Guests
	&Guest{},
	// Bookings
	&Booking{},
	// Laundry
	&LaundryCategory{},
	&LaundryService{},
	&LaundryPrice{},
	&LaundryOrder{},
	&LaundryOrderItem{},
	// Memberships
	&MembershipPlan{},
	&Membership{},
	// Events
	&EventHall{},
	&EventBooking{},
	// Billing
	&Receipt{},
	// Infrastructure
	&Notification{},
	&NotificationLog{},
	&OpsScheduler{},
}
