// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

/*
Package cache provides a thread-safe, generic in-memory cache with TTL support.

Two stores in menuwise are built on it:

  - session.Manager keeps one orchestrator per browser session and expires
    idle sessions (sliding TTL via Touch).
  - extract.Cached remembers extraction results keyed by a content hash, so
    resubmitting the same photo or text skips the model call.

# Expiration

Expiry is checked lazily on Get and eagerly by Cleanup. Cleanup is not run
by the cache itself; callers drive it with Run, which the supervisor tree
owns:

	c := cache.New[*Session](30 * time.Minute)
	c.OnEvict(func(key string, s *Session) { s.Close() })
	go c.Run(ctx, time.Minute)

Eviction callbacks run outside the cache lock and may call back into the
cache.

# Keys

GenerateKey hashes JSON-serializable parameters into a compact key:

	key := cache.GenerateKey("extract", params)
*/
package cache
