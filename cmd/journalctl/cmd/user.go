// cmd/journalctl/cmd/user.go
package cmd

import (
	"errors"
	"fmt"
	"os"

	"babyjournal/internal/domain/user"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	adminName  string
	adminEmail string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Управление пользователями",
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Создать администратора",
	Long: `Создает пользователя с ролью admin. Работает даже тогда,
когда регистрация на сайте закрыта. Пароль запрашивается в терминале.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if adminEmail == "" {
			return errors.New("укажите --email")
		}
		if adminName == "" {
			adminName = adminEmail
		}

		password, err := readPassword()
		if err != nil {
			return err
		}

		gw, err := openStorage(cmd.Context())
		if err != nil {
			return err
		}
		defer gw.Close()

		users, _ := services(gw)
		u, err := users.CreateAdmin(cmd.Context(), user.RegisterRequest{
			Name:     adminName,
			Email:    adminEmail,
			Password: password,
		})
		if err != nil {
			return fmt.Errorf("ошибка создания администратора: %w", err)
		}

		color.Green("Администратор %s создан (id %d)", u.Email, u.ID)
		return nil
	},
}

func readPassword() (string, error) {
	fmt.Print("Пароль: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("ошибка чтения пароля: %w", err)
	}
	fmt.Println()

	fmt.Print("Повторите пароль: ")
	confirm, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("ошибка чтения пароля: %w", err)
	}
	fmt.Println()

	if string(password) != string(confirm) {
		return "", errors.New("пароли не совпадают")
	}
	return string(password), nil
}

func init() {
	createAdminCmd.Flags().StringVar(&adminName, "name", "", "имя администратора")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "email администратора")
}
