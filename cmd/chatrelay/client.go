package main

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	clientServer string
	clientNick   string
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Connect to a chat relay server from the terminal",
	Args:  cobra.NoArgs,
	RunE:  runClient,
}

func init() {
	rootCmd.AddCommand(clientCmd)

	clientCmd.Flags().StringVar(&clientServer, "server", "127.0.0.1:10624", "server address")
	clientCmd.Flags().StringVar(&clientNick, "nick", "", "nickname (prompted when empty)")
}

// runClient is a thin transport consumer: it answers the handshake sentinel
// with the nickname, prints every received line, and forwards stdin lines.
func runClient(_ *cobra.Command, _ []string) error {
	stdin := bufio.NewScanner(os.Stdin)

	nick := strings.TrimSpace(clientNick)
	for nick == "" {
		fmt.Print("Choose your nickname: ")
		if !stdin.Scan() {
			return stdin.Err()
		}
		nick = strings.TrimSpace(stdin.Text())
	}

	conn, err := net.Dial("tcp", clientServer)
	if err != nil {
		return fmt.Errorf("dial %s: %w", clientServer, err)
	}
	defer conn.Close()

	done := make(chan error, 1)
	go func() {
		server := bufio.NewScanner(conn)
		for server.Scan() {
			line := server.Text()
			if line == "NICK" {
				if _, err := fmt.Fprintln(conn, nick); err != nil {
					done <- err
					return
				}
				continue
			}
			fmt.Println(line)
		}
		done <- server.Err()
	}()

	go func() {
		for stdin.Scan() {
			if _, err := fmt.Fprintln(conn, stdin.Text()); err != nil {
				done <- err
				return
			}
		}
		done <- stdin.Err()
	}()

	if err := <-done; err != nil {
		return fmt.Errorf("connection closed: %w", err)
	}
	fmt.Println("Disconnected.")
	return nil
}
