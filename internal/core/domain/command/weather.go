package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cortex/internal/core/domain"
	"cortex/internal/core/port"
)

const weatherUsage = "Please specify a location. Usage: `!weather <location>`"

type Weather struct {
	fetcher    port.WeatherFetcher
	textSender port.TextSender
	command    string
}

func NewWeather(fetcher port.WeatherFetcher, sender port.TextSender, command string) *Weather {
	return &Weather{fetcher: fetcher, textSender: sender, command: command}
}

func (w *Weather) GetCommand() string {
	return w.command
}

func (w *Weather) GetDescription() string {
	return "Fetches the current weather for a specified location."
}

func (w *Weather) Respond(ctx context.Context, message *domain.Message, args []string) error {
	reply, err := w.report(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	_, err = w.textSender.SendMessageReply(ctx, message, reply)
	return err
}

// report builds the weather reply for a location. Unknown locations produce a reply, not an error.
func (w *Weather) report(ctx context.Context, location string) (string, error) {
	if location == "" {
		return weatherUsage, nil
	}

	weather, err := w.fetcher.CurrentWeather(ctx, location)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Sprintf("Unable to fetch weather for **%s**. Please check the location and try again.", location), nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to fetch weather: %w", err)
	}

	return FormatWeather(weather), nil
}

func FormatWeather(w port.Weather) string {
	return fmt.Sprintf(`🌤 **Weather in %s, %s, %s:**
- **Temperature**: %s°C
- **Weather**: %s
- **Humidity**: %s%%
- **Wind Speed**: %s km/h
- **Feels Like**: %s°C`,
		w.Name, w.Region, w.Country,
		formatNumber(w.Temperature),
		w.Description,
		formatNumber(w.Humidity),
		formatNumber(w.WindSpeed),
		formatNumber(w.FeelsLike))
}

func formatNumber(f float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.1f", f), "0"), ".")
}
