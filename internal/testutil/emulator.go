package testutil

import (
	"context"
	"net"
	"os"
	"testing"

	"cloud.google.com/go/firestore"
)

// EmulatorProjectID is the project the Firestore emulator tests run against.
const EmulatorProjectID = "demo-test-project"

// RequireEmulator skips the test unless a Firestore emulator answers at
// FIRESTORE_EMULATOR_HOST.
func RequireEmulator(t *testing.T) {
	t.Helper()
	requireReachable(t, "FIRESTORE_EMULATOR_HOST", "Firestore emulator")
}

// FirestoreClient returns a client connected to the emulator, closed when the
// test ends. The test is skipped when no emulator is running.
func FirestoreClient(t *testing.T) *firestore.Client {
	t.Helper()
	RequireEmulator(t)

	client, err := firestore.NewClient(context.Background(), EmulatorProjectID)
	if err != nil {
		t.Fatalf("failed to create firestore client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func requireReachable(t *testing.T, envVar, name string) {
	t.Helper()

	host := os.Getenv(envVar)
	if host == "" {
		t.Skipf("%s not set; skipping %s test", envVar, name)
	}

	var d net.Dialer
	conn, err := d.DialContext(context.Background(), "tcp", host)
	if err != nil {
		t.Skipf("%s not reachable at %s: %v", name, host, err)
	}
	_ = conn.Close()
}
