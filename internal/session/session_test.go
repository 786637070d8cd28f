package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/routelight/routelight/internal/auth"
	"github.com/routelight/routelight/internal/config"
	"github.com/routelight/routelight/internal/model"
)

// fakeBrowser is a Browser test double that hands out fakeContexts.
type fakeBrowser struct {
	newContextErr error
	lastSpec      ContextSpec
	contexts      []*fakeContext
	// template configures the behavior of every handed-out context.
	template fakeContext
}

func (b *fakeBrowser) NewContext(_ context.Context, spec ContextSpec) (BrowserContext, error) {
	if b.newContextErr != nil {
		return nil, b.newContextErr
	}
	b.lastSpec = spec
	bctx := b.template
	b.contexts = append(b.contexts, &bctx)
	return &bctx, nil
}

// fakeContext is a scriptable BrowserContext test double.
type fakeContext struct {
	setCookiesErr error
	navigateErr   error
	status        int
	waitErr       error
	blockOnWait   bool

	cookiesSet  []auth.Credential
	navigatedTo string
	closeCount  int
}

func (c *fakeContext) SetCookies(_ context.Context, credentials []auth.Credential) error {
	if c.setCookiesErr != nil {
		return c.setCookiesErr
	}
	c.cookiesSet = credentials
	return nil
}

func (c *fakeContext) Navigate(_ context.Context, url string) (int, error) {
	if c.navigateErr != nil {
		return 0, c.navigateErr
	}
	c.navigatedTo = url
	return c.status, nil
}

func (c *fakeContext) WaitVisible(ctx context.Context, _ string) error {
	if c.blockOnWait {
		<-ctx.Done()
		return ctx.Err()
	}
	return c.waitErr
}

func (c *fakeContext) Close() error {
	c.closeCount++
	return nil
}

// TestManagerAcquire covers the session acquisition flow and its
// failure classification.
func TestManagerAcquire(t *testing.T) {
	t.Parallel()

	viewport := Viewport{Width: 1280, Height: 720}
	route := config.Route{Name: "home", Path: "/"}

	t.Run("successful acquisition", func(t *testing.T) {
		t.Parallel()

		browser := &fakeBrowser{template: fakeContext{status: 200}}
		manager := NewManager(browser, NewPortRegistry(9222, 4))

		handle, err := manager.Acquire(context.Background(), route, "https://example.com", nil, viewport)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer manager.Release(handle)

		if handle.URL != "https://example.com/" {
			t.Errorf("unexpected resolved URL: %q", handle.URL)
		}
		if handle.DebugPort != 9222 {
			t.Errorf("expected port 9222, got %d", handle.DebugPort)
		}
		if handle.ID == "" {
			t.Error("expected a session ID")
		}
		if browser.lastSpec.DebugPort != handle.DebugPort {
			t.Errorf("context spec port %d does not match handle port %d", browser.lastSpec.DebugPort, handle.DebugPort)
		}
		if browser.lastSpec.Viewport != viewport {
			t.Errorf("unexpected viewport spec: %+v", browser.lastSpec.Viewport)
		}
	})

	t.Run("credentials are injected before navigation", func(t *testing.T) {
		t.Parallel()

		browser := &fakeBrowser{template: fakeContext{status: 200}}
		manager := NewManager(browser, NewPortRegistry(9222, 4))

		credentials := []auth.Credential{{Domain: ".example.com", Name: "session", Value: "v"}}
		handle, err := manager.Acquire(context.Background(), route, "https://example.com", credentials, viewport)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer manager.Release(handle)

		bctx := browser.contexts[0]
		if len(bctx.cookiesSet) != 1 || bctx.cookiesSet[0].Name != "session" {
			t.Errorf("expected injected credentials, got %+v", bctx.cookiesSet)
		}
	})

	t.Run("navigation error is a navigation failure", func(t *testing.T) {
		t.Parallel()

		browser := &fakeBrowser{template: fakeContext{navigateErr: errors.New("dns lookup failed")}}
		ports := NewPortRegistry(9222, 4)
		manager := NewManager(browser, ports)

		_, err := manager.Acquire(context.Background(), route, "https://example.com", nil, viewport)
		if !model.IsKind(err, model.KindNavigation) {
			t.Errorf("expected navigation-kind failure, got %v", err)
		}
		if ports.Active() != 0 {
			t.Errorf("expected port released on failure, %d still active", ports.Active())
		}
	})

	t.Run("absent HTTP response is a navigation failure", func(t *testing.T) {
		t.Parallel()

		browser := &fakeBrowser{template: fakeContext{status: 0}}
		manager := NewManager(browser, NewPortRegistry(9222, 4))

		_, err := manager.Acquire(context.Background(), route, "https://example.com", nil, viewport)
		if !model.IsKind(err, model.KindNavigation) {
			t.Errorf("expected navigation-kind failure, got %v", err)
		}
	})

	t.Run("HTTP 404 is a navigation failure carrying the status", func(t *testing.T) {
		t.Parallel()

		browser := &fakeBrowser{template: fakeContext{status: 404}}
		manager := NewManager(browser, NewPortRegistry(9222, 4))

		_, err := manager.Acquire(context.Background(), route, "https://example.com", nil, viewport)
		if !model.IsKind(err, model.KindNavigation) {
			t.Fatalf("expected navigation-kind failure, got %v", err)
		}

		var failure *model.Failure
		if !errors.As(err, &failure) {
			t.Fatalf("expected *model.Failure, got %T", err)
		}
		if failure.Status != 404 {
			t.Errorf("expected status 404, got %d", failure.Status)
		}
	})

	t.Run("selector timeout is distinct from navigation", func(t *testing.T) {
		t.Parallel()

		browser := &fakeBrowser{template: fakeContext{status: 200, blockOnWait: true}}
		ports := NewPortRegistry(9222, 4)
		manager := NewManager(browser, ports, WithSelectorTimeout(20*time.Millisecond))

		slow := config.Route{Name: "slow", Path: "/slow", WaitSelector: "#app"}
		_, err := manager.Acquire(context.Background(), slow, "https://example.com", nil, viewport)
		if !model.IsKind(err, model.KindSelectorTimeout) {
			t.Errorf("expected selector_timeout-kind failure, got %v", err)
		}
		if ports.Active() != 0 {
			t.Errorf("expected port released on failure, %d still active", ports.Active())
		}
	})

	t.Run("successful selector wait", func(t *testing.T) {
		t.Parallel()

		browser := &fakeBrowser{template: fakeContext{status: 200}}
		manager := NewManager(browser, NewPortRegistry(9222, 4))

		ready := config.Route{Name: "ready", Path: "/ready", WaitSelector: "#app"}
		handle, err := manager.Acquire(context.Background(), ready, "https://example.com", nil, viewport)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		manager.Release(handle)
	})

	t.Run("credential injection failure is an auth failure", func(t *testing.T) {
		t.Parallel()

		browser := &fakeBrowser{template: fakeContext{setCookiesErr: errors.New("protocol error")}}
		ports := NewPortRegistry(9222, 4)
		manager := NewManager(browser, ports)

		credentials := []auth.Credential{{Domain: ".example.com", Name: "session", Value: "v"}}
		_, err := manager.Acquire(context.Background(), route, "https://example.com", credentials, viewport)
		if !model.IsKind(err, model.KindAuth) {
			t.Errorf("expected auth-kind failure, got %v", err)
		}
		if ports.Active() != 0 {
			t.Errorf("expected port released on failure, %d still active", ports.Active())
		}
	})

	t.Run("port exhaustion is an audit failure", func(t *testing.T) {
		t.Parallel()

		browser := &fakeBrowser{template: fakeContext{status: 200}}
		ports := NewPortRegistry(9222, 1)
		manager := NewManager(browser, ports)

		first, err := manager.Acquire(context.Background(), route, "https://example.com", nil, viewport)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer manager.Release(first)

		other := config.Route{Name: "other", Path: "/other"}
		_, err = manager.Acquire(context.Background(), other, "https://example.com", nil, viewport)
		if !model.IsKind(err, model.KindAudit) {
			t.Errorf("expected audit-kind failure, got %v", err)
		}
		if !errors.Is(err, ErrPortsExhausted) {
			t.Errorf("expected wrapped ErrPortsExhausted, got %v", err)
		}
	})

	t.Run("browser context failure is an audit failure", func(t *testing.T) {
		t.Parallel()

		browser := &fakeBrowser{newContextErr: errors.New("chrome not found")}
		ports := NewPortRegistry(9222, 4)
		manager := NewManager(browser, ports)

		_, err := manager.Acquire(context.Background(), route, "https://example.com", nil, viewport)
		if !model.IsKind(err, model.KindAudit) {
			t.Errorf("expected audit-kind failure, got %v", err)
		}
		if ports.Active() != 0 {
			t.Errorf("expected port released on failure, %d still active", ports.Active())
		}
	})
}

// TestManagerRelease verifies idempotent teardown.
func TestManagerRelease(t *testing.T) {
	t.Parallel()

	t.Run("release closes the context and frees the port", func(t *testing.T) {
		t.Parallel()

		browser := &fakeBrowser{template: fakeContext{status: 200}}
		ports := NewPortRegistry(9222, 4)
		manager := NewManager(browser, ports)

		handle, err := manager.Acquire(context.Background(), config.Route{Name: "home", Path: "/"}, "https://example.com", nil, Viewport{Width: 1280, Height: 720})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		manager.Release(handle)
		if ports.Active() != 0 {
			t.Errorf("expected 0 active ports, got %d", ports.Active())
		}
		if browser.contexts[0].closeCount != 1 {
			t.Errorf("expected 1 close, got %d", browser.contexts[0].closeCount)
		}
	})

	t.Run("double release is a no-op", func(t *testing.T) {
		t.Parallel()

		browser := &fakeBrowser{template: fakeContext{status: 200}}
		ports := NewPortRegistry(9222, 4)
		manager := NewManager(browser, ports)

		handle, err := manager.Acquire(context.Background(), config.Route{Name: "home", Path: "/"}, "https://example.com", nil, Viewport{Width: 1280, Height: 720})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		manager.Release(handle)
		manager.Release(handle)
		if browser.contexts[0].closeCount != 1 {
			t.Errorf("expected exactly 1 close after double release, got %d", browser.contexts[0].closeCount)
		}
	})

	t.Run("nil handle is a no-op", func(t *testing.T) {
		t.Parallel()

		manager := NewManager(&fakeBrowser{}, NewPortRegistry(9222, 4))
		manager.Release(nil)
	})
}
