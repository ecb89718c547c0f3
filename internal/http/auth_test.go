package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	html "github.com/gofiber/template/html/v2"
	"golang.org/x/crypto/bcrypt"

	"stickerpress/internal/http/handlers"
	"stickerpress/internal/repos"
	"stickerpress/internal/services"
)

// Seeded passwords must be stored hashed, never as plaintext.
func TestSeededPasswordsAreHashed(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	var hashes []string
	if err := db.Select(&hashes, `SELECT password_hash FROM users`); err != nil {
		t.Fatalf("select hashes: %v", err)
	}
	if len(hashes) == 0 {
		t.Fatal("no users seeded")
	}
	for _, h := range hashes {
		if strings.Contains(h, "password") || strings.Contains(h, "admin123") {
			t.Fatalf("hash contains plaintext password")
		}
		if !strings.HasPrefix(h, "$2") {
			t.Fatalf("unexpected hash format: %s", h)
		}
	}
	// The demo hash must still validate its known password.
	var demoHash string
	if err := db.Get(&demoHash, `SELECT password_hash FROM users WHERE email='demo@example.com'`); err != nil {
		t.Fatal(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(demoHash), []byte("password")); err != nil {
		t.Fatalf("seed hash does not validate known password: %v", err)
	}
}

func TestLoginFormLoginAndCaseFolding(t *testing.T) {
	app, _, _ := newApp(t, "direct")

	// Wrong password -> 401 with the uniform message.
	resp := postForm(t, app, "/login", "", url.Values{
		"email": {"demo@example.com"}, "password": {"wrongpass"},
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad creds, got %d", resp.StatusCode)
	}
	if body := bodyOf(t, resp); !strings.Contains(body, "Invalid email or password") {
		t.Fatalf("uniform failure message missing; body=%s", body)
	}

	// Case-variant email with the right password -> redirect home.
	resp = postForm(t, app, "/login", "", url.Values{
		"email": {"DEMO@Example.COM"}, "password": {"password"},
	})
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect on success, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
}

func TestLoginRedirectsToNext(t *testing.T) {
	app, _, _ := newApp(t, "direct")

	resp := postForm(t, app, "/login", "", url.Values{
		"email": {"demo@example.com"}, "password": {"password"}, "next": {"/checkout"},
	})
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/checkout" {
		t.Fatalf("expected resume at /checkout, got %q", loc)
	}

	// Off-site targets are not followed.
	resp = postForm(t, app, "/login", "", url.Values{
		"email": {"demo@example.com"}, "password": {"password"}, "next": {"//evil.example"},
	})
	if loc := resp.Header.Get("Location"); loc != "/" {
		t.Fatalf("expected protocol-relative next to fall back to /, got %q", loc)
	}
}

// Login throttling with a per-route limiter, mirroring the production wiring.
func TestLoginThrottle(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	authSvc := &services.AuthService{Users: repos.NewUserRepo(db), AdminEmail: "admin@example.com"}
	authH := &handlers.AuthHandler{Auth: authSvc}
	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Post("/login", limiter.New(limiter.Config{Max: 2, Expiration: time.Minute}), authH.Login)

	post := func() *http.Response {
		form := strings.NewReader("email=demo@example.com&password=wrongpass")
		req := httptest.NewRequest("POST", "/login", form)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		resp, err := app.Test(req, 5000)
		if err != nil {
			t.Fatal(err)
		}
		return resp
	}

	for i := 0; i < 2; i++ {
		if resp := post(); resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i+1, resp.StatusCode)
		}
	}
	if resp := post(); resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after throttle, got %d", resp.StatusCode)
	}
}

func TestSignupFlow(t *testing.T) {
	app, _, auth := newApp(t, "direct")

	// Missing name -> 400.
	resp := postForm(t, app, "/signup", "", url.Values{
		"email": {"new@example.com"}, "password": {"secret12"},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %d", resp.StatusCode)
	}

	// Duplicate email (case-variant) -> 409.
	resp = postForm(t, app, "/signup", "", url.Values{
		"name": {"Dupe"}, "email": {"DEMO@example.com"}, "password": {"secret12"},
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", resp.StatusCode)
	}

	// Valid signup -> success page, then the new account can sign in.
	resp = postForm(t, app, "/signup", "", url.Values{
		"name": {"New User"}, "email": {"new@example.com"}, "password": {"secret12"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 success page, got %d", resp.StatusCode)
	}
	if body := bodyOf(t, resp); !strings.Contains(body, "New User") {
		t.Fatalf("success page should greet the new account; body=%s", body)
	}
	signIn(t, auth, "new@example.com", "secret12")
}

func TestLogoutExpiresCookieAndSession(t *testing.T) {
	app, _, auth := newApp(t, "direct")
	sid := signIn(t, auth, "demo@example.com", "password")

	resp := postForm(t, app, "/logout", sid, url.Values{})
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect after logout, got %d", resp.StatusCode)
	}
	for _, c := range resp.Cookies() {
		if c.Name == "sid" && c.Value != "" && c.Expires.After(time.Now()) {
			t.Fatal("sid cookie should be expired")
		}
	}

	// The old sid no longer resolves to a user: /profile bounces to login.
	resp = getPage(t, app, "/profile", sid)
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect for stale session, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); !strings.HasPrefix(loc, "/login") {
		t.Fatalf("expected bounce to /login, got %q", loc)
	}
}
