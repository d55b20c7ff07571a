// Package snapshot persists the committed order of a list so it survives
// restarts and can be shared between server instances.
//
// A Store maps a list ID to the ordered item keys. Three backends are
// provided:
//
//   - MemoryStore: process-local, the default
//   - RedisStore: github.com/redis/go-redis/v9
//   - S3Store: github.com/aws/aws-sdk-go-v2/service/s3
//
// Open builds a store from a Config.
package snapshot
