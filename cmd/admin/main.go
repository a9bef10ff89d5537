package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/badoux/checkmail"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/vilass86/cardgame/pkg/model"
)

var command = flag.String("c", "user", "specifies the command (user, promote)")

var stdin = bufio.NewReader(os.Stdin)

func main() {
	flag.Parse()

	switch *command {
	case "user":
		createUser()
	case "promote":
		promoteUser()
	default:
		logrus.Fatalf("unknown command: %s", *command)
	}
}

// createUser interactively creates a player and optionally promotes it
func createUser() {
	email := getEmail()
	if email == "" {
		os.Exit(1)
	}

	password := getPassword()
	if password == "" {
		os.Exit(1)
	}

	displayName, err := getInput("Display name")
	if err != nil {
		logrus.WithError(err).Fatal("could not get answer")
	}

	if displayName == "" {
		displayName = "Admin"
	}

	player, err := model.CreatePlayer(context.Background(), email, displayName, password, "127.0.0.1")
	if err != nil {
		logrus.WithError(err).Fatal("could not create player")
	}

	fmt.Printf("Created player %d\n", player.ID)

	promote, err := getInput("Make site admin (Y/n)")
	if err != nil {
		logrus.WithError(err).Fatal("could not get answer")
	}

	if promote == "" || strings.ToLower(promote)[0] == 'y' {
		makeSiteAdmin(player)
	}
}

// promoteUser grants site admin to a player that already exists
func promoteUser() {
	email := getEmail()
	if email == "" {
		os.Exit(1)
	}

	player, err := model.GetPlayerByEmail(context.Background(), email)
	if err != nil {
		logrus.WithError(err).Fatal("could not find player")
	}

	makeSiteAdmin(player)
}

func makeSiteAdmin(player *model.Player) {
	if err := player.SetIsSiteAdmin(context.Background(), true); err != nil {
		logrus.WithError(err).Fatal("could not promote player to site admin")
	}

	fmt.Printf("Player %d promoted to site admin\n", player.ID)
}

func getPassword() string {
	for {
		password := readPassword("Password")
		if password == "" {
			return ""
		}

		if len(password) < 6 {
			_, _ = fmt.Fprintln(os.Stderr, "password must be 6 or more characters")
			continue
		}

		if confirm := readPassword("Confirm password"); confirm != password {
			_, _ = fmt.Fprintln(os.Stderr, "passwords do not match")
			continue
		}

		return password
	}
}

func readPassword(prompt string) string {
	fmt.Printf("%s: ", prompt)
	pwBytes, err := term.ReadPassword(0)
	fmt.Println("")
	if err != nil {
		return ""
	}

	return strings.TrimRight(string(pwBytes), "\r\n")
}

func getEmail() string {
	for {
		email, err := getInput("Email")
		if err != nil {
			logrus.WithError(err).Warn("could not read email")
			return ""
		}

		if email == "" {
			return ""
		}

		if err := checkmail.ValidateFormat(email); err != nil {
			_, _ = fmt.Fprintln(os.Stderr, err)
			continue
		}

		return email
	}
}

func getInput(question string) (string, error) {
	fmt.Printf("%s: ", question)
	str, err := stdin.ReadString('\n')
	if err != nil {
		return "", err
	}

	return strings.TrimRight(str, "\r\n"), nil
}
