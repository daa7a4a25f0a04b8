// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type (sqlite, postgres, memory)
	-cron-secret  Bearer secret for the weekly trigger endpoints
	-env-file     Environment file (default .env, optional)

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p (default 3318)
	DATABASE_URL  → -d
	DATABASE_TYPE → -t (default sqlite)
	CRON_SECRET   → -cron-secret

Environment only:

	REDIS_ADDR, REDIS_PASSWORD, REDIS_DB   vote ledger in redis
	TMDB_API_KEY, TMDB_BASE_URL            movie titles and posters
	SCHEDULER_ENABLED                      run the weekly cycle in process
	LOCK_SCHEDULE    (default "fri 16:00")
	UNLOCK_SCHEDULE  (default "mon 00:00")
	SCHEDULE_TZ      (default Asia/Kuala_Lumpur)
	LOG_LEVEL        debug, info, warn, error
	LOG_FORMAT       text or json

CLI flags take precedence over environment variables, and real environment
variables take precedence over the env file.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided unless DATABASE_TYPE is memory
  - CRON_SECRET must be provided
*/
package cliparse
