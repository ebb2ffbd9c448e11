package catalog

import (
	"fmt"
	"net/http"

	"github.com/tailscale/tailsql/server/tailsql"
	"tailscale.com/tsweb"
)

// AttachAdminRoutes mounts the /debug/ index on mux with a tailsql console
// over the catalog database.
func (c *Catalog) AttachAdminRoutes(mux *http.ServeMux) error {
	debug := tsweb.Debugger(mux)

	tsql, err := tailsql.NewServer(tailsql.Options{
		RoutePrefix: "/debug/tailsql/",
	})
	if err != nil {
		return fmt.Errorf("failed to create tailsql server: %w", err)
	}
	tsql.SetDB("sqlite://catalog", c.db, &tailsql.DBOptions{
		Label: "Satellite catalog",
	})

	debug.Handle("tailsql/", "Satellite catalog SQL console", tsql.NewMux())
	debug.Handle("catalog/version", "Catalog schema version", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		version, dirty, err := c.MigrationVersion()
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to read version: %v", err), http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, "version=%d dirty=%v\n", version, dirty)
	}))
	return nil
}
