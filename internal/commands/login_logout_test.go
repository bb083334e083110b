package commands_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"taskpad/internal/commands"
	"taskpad/internal/exitcode"
)

const testOAuthClient = `{"installed":{"client_id":"test","client_secret":"test","redirect_uris":["http://localhost"]}}`

// TestLoginCommand_NoOAuthClient verifies login fails without oauth_client.json
func TestLoginCommand_NoOAuthClient(t *testing.T) {
	sess := newSession(t, false, "", nil)

	stdout, stderr, code := runCommand(t, sess, &commands.LoginCmd{})

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if !strings.HasPrefix(stderr, "error: oauth_client.json not found in ") {
		t.Errorf("expected error about missing oauth_client.json, got %q", stderr)
	}
	if !strings.Contains(stderr, "taskpad login") {
		t.Error("setup instructions should mention 'taskpad login'")
	}
}

// TestLoginCommand_TokenWithoutRefresh verifies login starts over when the
// stored token cannot be refreshed.
func TestLoginCommand_TokenWithoutRefresh(t *testing.T) {
	for _, token := range []string{
		`{"access_token":"expired","token_type":"Bearer"}`,
		`not json`,
	} {
		sess := newSession(t, false, "", nil)
		writeFile(t, sess.Config.OAuthClientPath(), testOAuthClient)
		writeFile(t, sess.Config.TokenPath(), token)

		// cancelled up front so the callback wait returns immediately
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var outBuf, errBuf strings.Builder
		code := (&commands.LoginCmd{}).Run(ctx, sess, nil, &outBuf, &errBuf)

		if outBuf.String() == "already logged in\n" {
			t.Errorf("token %s: should not say 'already logged in'", token)
		}
		if code != exitcode.AuthError {
			t.Errorf("token %s: expected exit code %d, got %d", token, exitcode.AuthError, code)
		}
	}
}

// TestLogoutCommand_OnlyRemovesToken verifies logout only removes token.json
func TestLogoutCommand_OnlyRemovesToken(t *testing.T) {
	sess := newSession(t, false, "", nil)
	writeFile(t, sess.Config.OAuthClientPath(), testOAuthClient)
	writeFile(t, sess.Config.TokenPath(), `{"access_token":"test","refresh_token":"test"}`)

	stdout, stderr, code := runCommand(t, sess, &commands.LogoutCmd{})

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}
	if sess.Config.HasToken() {
		t.Error("token.json should have been deleted")
	}
	if !sess.Config.HasOAuthClient() {
		t.Error("oauth_client.json should NOT have been deleted")
	}
}

// TestLogoutCommand_NotLoggedIn verifies logout without a token still succeeds
func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	stdout, stderr, code := runCommand(t, newSession(t, false, "", nil), &commands.LogoutCmd{})

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "not logged in\n" {
		t.Errorf("expected 'not logged in\\n', got %q", stdout)
	}

	stdout, _, _ = runCommand(t, newSession(t, true, "", nil), &commands.LogoutCmd{})
	if stdout != "" {
		t.Errorf("expected empty stdout in quiet mode, got %q", stdout)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
