package distribute

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const lockRetryDelay = 500 * time.Millisecond

// Credentials holds destination secrets loaded from the environment.
type Credentials struct {
	TelegramBotToken string
	TelegramChatID   string
}

// LoadCredentials reads destination secrets, merging an optional dotenv file
// into the process environment first. A missing file is not an error; shell
// environment always wins over file values.
func LoadCredentials(envFile string) (Credentials, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Credentials{}, err
		}
	}
	return Credentials{
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   os.Getenv("TELEGRAM_CHAT_ID"),
	}, nil
}
