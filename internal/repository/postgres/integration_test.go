//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sessionforge/authcore/internal/kdf"
	"github.com/sessionforge/authcore/internal/model"
	repo "github.com/sessionforge/authcore/internal/repository/postgres"
	"github.com/sessionforge/authcore/internal/service"
	"github.com/sessionforge/authcore/internal/testutil"
)

var conn *repo.Connection

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "authcore_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn := fmt.Sprintf("postgres://postgres:password@%s:%s/authcore_test?sslmode=disable", host, port.Port())

	conn, err = repo.NewConnection(ctx, dsn)
	if err != nil {
		panic(err)
	}

	code := m.Run()
	_ = conn.Close()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func createUser(t *testing.T, username string) model.User {
	t.Helper()
	salt, err := kdf.NewSalt()
	require.NoError(t, err)

	users := repo.NewUserRepository(conn)
	user, err := users.Create(context.Background(), model.User{
		Username: username,
		Hash:     kdf.SHA256{}.Derive("pw123", salt),
		Salt:     salt,
	})
	require.NoError(t, err)
	return user
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	users := repo.NewUserRepository(conn)
	user := createUser(t, "create-get")

	byID, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user, byID)

	byName, err := users.GetByUsername(ctx, "create-get")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)
	assert.Equal(t, []string{}, byName.Groups)

	_, err = users.GetByUsername(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	users := repo.NewUserRepository(conn)
	createUser(t, "taken")

	salt, err := kdf.NewSalt()
	require.NoError(t, err)

	_, err = users.Create(ctx, model.User{
		Username: "taken",
		Hash:     kdf.SHA256{}.Derive("other", salt),
		Salt:     salt,
	})
	assert.ErrorIs(t, err, model.ErrDuplicateUsername)
}

// Two concurrent creations of the same username: exactly one wins, the
// other observes the duplicate error. The unique constraint, not a
// check-then-insert, decides the race.
func TestUserRepository_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	users := repo.NewUserRepository(conn)

	salt, err := kdf.NewSalt()
	require.NoError(t, err)
	hash := kdf.SHA256{}.Derive("pw123", salt)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = users.Create(ctx, model.User{
				Username: "raced",
				Hash:     hash,
				Salt:     salt,
			})
		}(i)
	}
	wg.Wait()

	var dupes, oks int
	for _, err := range errs {
		switch {
		case err == nil:
			oks++
		case assert.ErrorIs(t, err, model.ErrDuplicateUsername):
			dupes++
		}
	}
	assert.Equal(t, 1, oks)
	assert.Equal(t, 1, dupes)
}

func TestUserRepository_GroupMembershipIsIdempotent(t *testing.T) {
	ctx := context.Background()
	users := repo.NewUserRepository(conn)
	user := createUser(t, "grouped")

	require.NoError(t, users.AddToGroup(ctx, user.ID, "admins"))
	require.NoError(t, users.AddToGroup(ctx, user.ID, "admins"))
	require.NoError(t, users.AddToGroup(ctx, user.ID, "ops"))

	got, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"admins", "ops"}, got.Groups)

	require.NoError(t, users.RemoveFromGroup(ctx, user.ID, "admins"))
	require.NoError(t, users.RemoveFromGroup(ctx, user.ID, "admins"))

	got, err = users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"ops"}, got.Groups)

	assert.ErrorIs(t, users.AddToGroup(ctx, uuid.New(), "admins"), model.ErrNotFound)
}

func TestUserRepository_DeleteCascadesToSessions(t *testing.T) {
	ctx := context.Background()
	users := repo.NewUserRepository(conn)
	sessions := repo.NewSessionRepository(conn)
	user := createUser(t, "doomed")

	first, err := sessions.Create(ctx, user.ID, time.Hour)
	require.NoError(t, err)
	second, err := sessions.Create(ctx, user.ID, time.Hour)
	require.NoError(t, err)

	require.NoError(t, users.Delete(ctx, user.ID))

	_, err = users.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = sessions.GetByToken(ctx, first.Token)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = sessions.GetByToken(ctx, second.Token)
	assert.ErrorIs(t, err, model.ErrNotFound)

	assert.ErrorIs(t, users.Delete(ctx, user.ID), model.ErrNotFound)
}

func TestSessionRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	sessions := repo.NewSessionRepository(conn)
	user := createUser(t, "sessioned")

	before := time.Now().Unix()
	session, err := sessions.Create(ctx, user.ID, time.Hour)
	require.NoError(t, err)

	assert.NotEqual(t, session.ID.String(), session.Token, "token must be distinct from id")
	assert.Len(t, session.Token, 64)
	assert.GreaterOrEqual(t, session.Expiry, before+3600)

	got, err := sessions.GetByToken(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session, got)

	_, err = sessions.GetByToken(ctx, "no-such-token")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestSessionRepository_CreateUnknownUser(t *testing.T) {
	ctx := context.Background()
	sessions := repo.NewSessionRepository(conn)

	_, err := sessions.Create(ctx, uuid.New(), time.Hour)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestSessionRepository_ExpiredSessionIsReaped(t *testing.T) {
	ctx := context.Background()
	sessions := repo.NewSessionRepository(conn)
	user := createUser(t, "stale")

	session, err := sessions.Create(ctx, user.ID, -time.Minute)
	require.NoError(t, err)

	// First read distinguishes "expired" and reaps the row.
	_, err = sessions.GetByToken(ctx, session.Token)
	assert.ErrorIs(t, err, model.ErrSessionExpired)

	// Second read: the row is gone.
	_, err = sessions.GetByToken(ctx, session.Token)
	assert.ErrorIs(t, err, model.ErrNotFound)

	// A lapsed session can never be renewed back to life.
	_, err = sessions.Renew(ctx, session.ID, time.Hour)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestSessionRepository_Renew(t *testing.T) {
	ctx := context.Background()
	sessions := repo.NewSessionRepository(conn)
	user := createUser(t, "renewed")

	session, err := sessions.Create(ctx, user.ID, time.Hour)
	require.NoError(t, err)

	renewed, err := sessions.Renew(ctx, session.ID, 2*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, session.Token, renewed.Token)
	assert.Greater(t, renewed.Expiry, session.Expiry)

	require.NoError(t, sessions.Revoke(ctx, session.ID))
	_, err = sessions.Renew(ctx, session.ID, time.Hour)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.ErrorIs(t, sessions.Revoke(ctx, session.ID), model.ErrNotFound)
}

func TestSessionRepository_SweepExpired(t *testing.T) {
	ctx := context.Background()
	sessions := repo.NewSessionRepository(conn)
	user := createUser(t, "swept")

	for range 3 {
		_, err := sessions.Create(ctx, user.ID, -time.Minute)
		require.NoError(t, err)
	}
	alive, err := sessions.Create(ctx, user.ID, time.Hour)
	require.NoError(t, err)

	count, err := sessions.SweepExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, count, int64(3))

	// The live session survives the sweep.
	_, err = sessions.GetByToken(ctx, alive.Token)
	assert.NoError(t, err)
}

// Full login/authorize/revoke scenario through the service layer.
func TestServices_LoginScenario(t *testing.T) {
	ctx := context.Background()
	log := testutil.MakeNoopLogger()
	k := kdf.SHA256{}
	userRepo := repo.NewUserRepository(conn)
	sessionRepo := repo.NewSessionRepository(conn)

	usersSvc := service.NewUsers(userRepo, k, log)
	verifier, err := service.NewVerifier(userRepo, k, log)
	require.NoError(t, err)
	auth := service.NewAuth(verifier, userRepo, sessionRepo, k, log)

	alice, err := usersSvc.Create(ctx, "alice", "pw123", "admins")
	require.NoError(t, err)

	before := time.Now().Unix()
	session, err := auth.Login(ctx, "alice", "pw123", time.Hour)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, session.Expiry, before+3600)

	_, err = auth.Login(ctx, "alice", "wrong", time.Hour)
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	gotID, groups, err := auth.Authorize(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, gotID)
	assert.Equal(t, []string{"admins"}, groups)

	require.NoError(t, auth.Logout(ctx, session.Token))

	_, _, err = auth.Authorize(ctx, session.Token)
	assert.ErrorIs(t, err, model.ErrUnauthenticated)

	// Logging out again is still success.
	require.NoError(t, auth.Logout(ctx, session.Token))
}
