package main

import (
	"flag"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vilass86/cardgame/pkg/db"
)

const retryInterval = time.Millisecond * 500

var timeout = flag.Duration("timeout", time.Second*10, "how long to wait for the database")

func main() {
	flag.Parse()

	waitForDB(*timeout)
	db.Migrate()
}

// waitForDB blocks until the database accepts connections so the container
// can start before its database does
func waitForDB(timeout time.Duration) {
	deadline := time.Now().Add(timeout)

	for {
		err := db.LoadInstance()
		if err == nil {
			return
		}

		if time.Now().After(deadline) {
			logrus.WithError(err).Fatal("could not connect to database")
		}

		logrus.WithError(err).Debug("database not ready")
		time.Sleep(retryInterval)
	}
}
