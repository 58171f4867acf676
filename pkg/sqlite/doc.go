// Package sqlite provides SQLite connectivity for applications built on anvil.
//
// It opens [github.com/mattn/go-sqlite3] databases with WAL journaling,
// foreign key enforcement, and a busy timeout applied to every pooled
// connection, and supplies the SQLite executor behind the sqlkit statement
// helpers:
//
//	conn, err := sqlite.Connect(ctx, sqlite.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	crud := sqlkit.NewCRUD(sqlite.NewExecutor(conn), nil)
//
// The package mirrors the db package surface (Connect, Healthcheck,
// Shutdown, NewExecutor) so an application can switch storage backends by
// swapping the executor it hands to sqlkit.
package sqlite
