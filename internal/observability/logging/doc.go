// Package logging builds the service's slog loggers and carries a per-request
// logger through context.
//
//	logger := logging.NewLogger()
//	slog.SetDefault(logger)
//
//	func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
//	    logging.FromContext(r.Context()).Info("listing notes")
//	}
package logging
