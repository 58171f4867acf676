// Package cache provides a generic TTL cache interface with an in-memory
// implementation.
//
// The [Cache] interface is generic over its value type, so callers get
// typed values back without assertions. Set interprets its ttl argument
// as: positive expires after the duration, zero adopts the cache default
// (an hour unless configured), negative never expires.
//
// # In-Memory Cache
//
// [NewMemory] backs the interface with a hash map plus a recency list, so
// lookups and LRU eviction are both O(1). A background sweeper drops
// expired entries between accesses:
//
//	c := cache.NewMemory[string](
//	    cache.WithDefaultTTL(5 * time.Minute),
//	    cache.WithCleanupInterval(30 * time.Second),
//	    cache.WithMaxEntries(10000),
//	)
//	defer c.Close()
//
//	c.Set(ctx, "greeting", "hello", 0)   // default TTL
//	val, err := c.Get(ctx, "greeting")   // "hello"
//
// # Eviction Callbacks
//
// Values owning resources can be released as they leave the cache. The
// callback fires on LRU eviction, expiration cleanup, Delete and Clear:
//
//	c := cache.NewMemory[*Connection](cache.WithMaxEntries(100))
//	c.SetEvictCallback(func(key string, conn *Connection) {
//	    conn.Close()
//	})
//
// # Cache Stampede Prevention
//
// The standalone [GetOrSet] function computes missing values through
// singleflight, so concurrent misses for one key run the loader once:
//
//	val, err := cache.GetOrSet(ctx, c, "user:123", func(ctx context.Context) (User, time.Duration, error) {
//	    user, err := repo.FindUser(ctx, "123")
//	    return user, 5 * time.Minute, err
//	})
//
// # Errors
//
// Misses surface as [ErrNotFound], writes after Close as [ErrClosed];
// both are sentinels meant for [errors.Is].
package cache
