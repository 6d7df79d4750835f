package core

import (
	"fmt"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05"

func timestamp() string {
	return time.Now().Format(timestampLayout)
}

func formatChat(nick, text string) string {
	return fmt.Sprintf("[%s] %s: %s", timestamp(), nick, text)
}

func formatPrivateFrom(sender, text string) string {
	return fmt.Sprintf("[%s] Private from %s: %s", timestamp(), sender, text)
}

func formatPrivateTo(target, text string) string {
	return fmt.Sprintf("[%s] Private to %s: %s", timestamp(), target, text)
}

func formatJoined(nick, channel string) string {
	return fmt.Sprintf("%s has joined %s.", nick, channel)
}

func formatLeft(nick, channel string) string {
	return fmt.Sprintf("%s has left %s.", nick, channel)
}
