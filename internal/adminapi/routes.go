// Package adminapi implements the REST surface of the admin console. Every
// handler speaks the same JSON envelope and reads its dependencies from the
// application context injected by the web server.
package adminapi

// RegisterRoutes mounts all admin API route groups. Call after
// webserver.Init.
func RegisterRoutes() {
	registerAuthRoutes()
	registerRoomRoutes()
	registerGuestRoutes()
	registerBookingRoutes()
	registerLaundryRoutes()
	registerMembershipRoutes()
	registerEventRoutes()
	registerReceiptRoutes()
	registerEstimateRoutes()
	registerEmployeeRoutes()
	registerSettingsRoutes()
	registerDashboardRoutes()
	registerSchedulerRoutes()
	registerNotificationRoutes()
	registerOprLogRoutes()
}
