package handlers

// HandlerBundle groups the handlers the router wires up.
type HandlerBundle struct {
	AuthHandler     *AuthHandler
	CommandHandler  *CommandHandler
	CalendarHandler *CalendarHandler
}
