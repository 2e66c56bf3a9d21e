// cmd/journalctl/cmd/site.go
package cmd

import (
	"fmt"

	"babyjournal/internal/domain/settings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	siteName      string
	registrations bool
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Настройки сайта",
}

var siteShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Показать настройки сайта",
	RunE: func(cmd *cobra.Command, _ []string) error {
		gw, err := openStorage(cmd.Context())
		if err != nil {
			return err
		}
		defer gw.Close()

		_, site := services(gw)
		c, err := site.CurrentSite(cmd.Context())
		if err != nil {
			return err
		}
		printSite(c)
		return nil
	},
}

var siteSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Изменить настройки сайта",
	Long: `Меняет только переданные флаги, остальные значения сохраняются.

Пример:
  journalctl site set --name "Mi Pequeño Tesoro" --registrations=false`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		gw, err := openStorage(cmd.Context())
		if err != nil {
			return err
		}
		defer gw.Close()

		_, site := services(gw)
		current, err := site.CurrentSite(cmd.Context())
		if err != nil {
			return err
		}

		in := settings.SiteInput{SiteName: current.SiteName, AllowNewRegistrations: &current.AllowNewRegistrations}
		if cmd.Flags().Changed("name") {
			in.SiteName = siteName
		}
		if cmd.Flags().Changed("registrations") {
			in.AllowNewRegistrations = &registrations
		}

		c, err := site.ApplySite(cmd.Context(), in)
		if err != nil {
			return fmt.Errorf("ошибка сохранения настроек: %w", err)
		}
		color.Green("Настройки сайта сохранены")
		printSite(c)
		return nil
	},
}

func printSite(c settings.SiteConfig) {
	fmt.Printf("Название:    %s\n", c.SiteName)
	if c.AllowNewRegistrations {
		fmt.Printf("Регистрация: %s\n", color.GreenString("открыта"))
	} else {
		fmt.Printf("Регистрация: %s\n", color.RedString("закрыта"))
	}
}

func init() {
	siteSetCmd.Flags().StringVar(&siteName, "name", "", "название сайта")
	siteSetCmd.Flags().BoolVar(&registrations, "registrations", true, "разрешить регистрацию новых пользователей")
}
