package handlers

// HandlerBundle groups every endpoint handler the router mounts.
type HandlerBundle struct {
	Users     *UserHandler
	Operators *OperatorHandler
	Buses     *BusHandler
	Routes    *RouteHandler
	Schedules *ScheduleHandler
	Bookings  *BookingHandler
	Permits   *PermitHandler
	Payments  *PaymentHandler
}
