package services

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vitrine-app/vitrine/internal/client/cache"
	"github.com/vitrine-app/vitrine/internal/client/models"
	"github.com/vitrine-app/vitrine/internal/client/remote"
	"github.com/vitrine-app/vitrine/internal/client/repositories/system"
	"github.com/vitrine-app/vitrine/internal/client/store"
	"github.com/vitrine-app/vitrine/internal/logging"
)

// Controller owns the bootstrap sequence and the session lifecycle. A
// failed step inside Initialize degrades (empty cache, absent session)
// rather than aborting the start-up.
type Controller struct {
	gw      *store.Gateway
	cache   *cache.Cache
	hyd     *cache.Hydrator
	remote  *remote.Client
	syncer  *Syncer
	log     logging.Logger
	offline *atomic.Bool

	// resetToken is the path of the data-epoch token file kept beside the
	// database.
	resetToken string

	mu      sync.Mutex
	session *models.Session
}

func NewController(
	gw *store.Gateway,
	c *cache.Cache,
	hyd *cache.Hydrator,
	rc *remote.Client,
	syncer *Syncer,
	resetToken string,
	offline *atomic.Bool,
	log logging.Logger,
) *Controller {
	return &Controller{
		gw: gw, cache: c, hyd: hyd, remote: rc, syncer: syncer,
		resetToken: resetToken, offline: offline, log: log,
	}
}

// Initialize runs the device bootstrap: forced-reset check, critical-tier
// hydration, session restore, content-tier hydration, then a fire-and-forget
// sync pass. It returns the restored user's profile, or nil when no valid
// session exists on this device.
func (c *Controller) Initialize(ctx context.Context) *models.UserProfile {
	if store.ResetTokenStale(c.resetToken) {
		c.log.Info(ctx, "stale data epoch, wiping local store", "token", c.resetToken)
		c.gw.Reset(ctx)
		if err := store.WriteResetToken(c.resetToken); err != nil {
			c.log.Warn(ctx, "failed to write reset token", "error", err)
		}
	}

	c.hyd.Critical(ctx)

	sess := c.restoreSession(ctx)
	if sess != nil {
		c.remote.SetToken(sess.Token)
	}

	c.hyd.Content(ctx)

	go c.syncer.RunPass(context.WithoutCancel(ctx))

	if sess == nil {
		return nil
	}
	if p := c.cache.UserByUsername(sess.Username); p != nil {
		return p
	}
	// Session restored but the profile has not been synced to this device
	// yet; hand back the identity we do know.
	return &models.UserProfile{Username: sess.Username}
}

// restoreSession loads the persisted session and validates its token
// claims locally. An undecodable, mismatched or expired token drops the
// session as if none were stored.
func (c *Controller) restoreSession(ctx context.Context) *models.Session {
	raw := c.gw.SystemGet(ctx, system.KeySession)
	if raw == "" {
		return nil
	}

	var sess models.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		c.log.Warn(ctx, "malformed session record, dropping", "error", err)
		c.gw.SystemDelete(ctx, system.KeySession)
		return nil
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(sess.Token, claims); err != nil {
		c.log.Warn(ctx, "undecodable session token, dropping", "error", err)
		c.gw.SystemDelete(ctx, system.KeySession)
		return nil
	}
	if claims.Subject != "" && claims.Subject != sess.Username {
		c.log.Warn(ctx, "session token subject mismatch, dropping",
			"username", sess.Username, "subject", claims.Subject)
		c.gw.SystemDelete(ctx, system.KeySession)
		return nil
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		c.log.Info(ctx, "session token expired, dropping", "username", sess.Username)
		c.gw.SystemDelete(ctx, system.KeySession)
		return nil
	}

	c.mu.Lock()
	c.session = &sess
	c.mu.Unlock()
	return &sess
}

// Login records a new session issued by the service and kicks off a sync
// pass so the signed-in user's private data starts arriving.
func (c *Controller) Login(ctx context.Context, username, token string) {
	sess := &models.Session{Username: username, Token: token}

	b, err := json.Marshal(sess)
	if err != nil {
		c.log.Warn(ctx, "failed to encode session record", "error", err)
	} else {
		c.gw.SystemPut(ctx, system.KeySession, string(b))
	}

	c.remote.SetToken(token)
	c.mu.Lock()
	c.session = sess
	c.mu.Unlock()

	go c.syncer.RunPass(context.WithoutCancel(ctx))
}

// Logout drops the persisted session and the bearer token. Local data is
// kept; signing out is not a reset.
func (c *Controller) Logout(ctx context.Context) {
	c.gw.SystemDelete(ctx, system.KeySession)
	c.remote.SetToken("")
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()
}

// Session returns a copy of the active session, nil when signed out.
func (c *Controller) Session() *models.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	s := *c.session
	return &s
}

// IsOffline reports the reachability verdict of the most recent sync pass
// or ping.
func (c *Controller) IsOffline() bool {
	return c.offline.Load()
}

// CheckReachability pings the service and updates the offline flag.
func (c *Controller) CheckReachability(ctx context.Context) bool {
	err := c.remote.Ping(ctx)
	c.offline.Store(err != nil)
	return err == nil
}
