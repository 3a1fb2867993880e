package commandxredis

import "github.com/Abraxas-365/reactx/pkg/errx"

var redisErrors = errx.NewRegistry("COMMANDX_REDIS")

var (
	ErrSubscribe = redisErrors.Register("SUBSCRIBE", errx.TypeExternal, 500, "Redis subscribe failed")
	ErrRead      = redisErrors.Register("READ", errx.TypeExternal, 500, "Redis read of enabled flag failed")
	ErrWrite     = redisErrors.Register("WRITE", errx.TypeExternal, 500, "Redis write of enabled flag failed")
	ErrParse     = redisErrors.Register("PARSE", errx.TypeValidation, 400, "Invalid enabled flag value")
)
