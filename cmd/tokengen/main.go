// tokengen выпускает токен для клиента API, когда включена защита JWT_SECRET.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/artem13815/icebreaker/pkg/config"
	"github.com/artem13815/icebreaker/pkg/security/jwt"
)

func main() {
	client := flag.String("client", "", "client name put into the token subject")
	scope := flag.String("scope", "icebreakers", "token scope")
	ttl := flag.Duration("ttl", 0, "token lifetime, defaults to JWT_TTL_MINUTES")
	flag.Parse()

	if *client == "" {
		log.Fatal("-client is required")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET is not set: API guard is off, no token needed")
	}
	if *ttl <= 0 {
		*ttl = time.Duration(cfg.JWT.TTLMinutes) * time.Minute
	}

	tok, err := jwt.NewGenerator(cfg.JWT.Secret, cfg.JWT.Issuer, *ttl).Generate(*client, *scope)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}
	fmt.Println(tok)
}
