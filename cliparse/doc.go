/*
Package cliparse parses configuration from CLI flags and the environment.

Flags win over environment variables; a .env file (loaded via godotenv) is
read first so local development needs no exported variables. Secrets
(ADMIN_KEY_SALT, SURVEY_SLUG_SALT) are required and the parser fails fast
without them.

	cfg, err := cliparse.ParseFlags(os.Args[1:])
*/
package cliparse
