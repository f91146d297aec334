// Package testserver runs the tool server over streamable HTTP for
// functional tests.
package testserver

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/jobtracker/internal/csvio"
	"github.com/rpggio/jobtracker/internal/domain/activity"
	"github.com/rpggio/jobtracker/internal/domain/company"
	"github.com/rpggio/jobtracker/internal/importer"
	"github.com/rpggio/jobtracker/internal/mcp"
	"github.com/rpggio/jobtracker/internal/sqlite"
	"github.com/rpggio/jobtracker/internal/store"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server *httptest.Server
	DB     *sqlite.DB
	Store  *store.Store
}

func New(t *testing.T) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	st := store.New(sqlite.NewBlobRepository(db))
	activitySvc := activity.NewService(sqlite.NewActivityRepository(db), nil)
	companySvc := company.NewService(st, activitySvc, nil)
	importSvc := importer.NewService(st, csvio.NewCodec(), activitySvc, nil)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Companies: companySvc,
			Imports:   importSvc,
			Activity:  activitySvc,
		},
	})
	server := httptest.NewServer(mcp.NewHTTPHandler(mcpServer, time.Minute))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{Server: server, DB: db, Store: st}
}

// Connect opens a client session against the server's /mcp endpoint.
func (ts *TestServer) Connect(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "functional-test", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.StreamableClientTransport{Endpoint: ts.Server.URL + "/mcp"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}
