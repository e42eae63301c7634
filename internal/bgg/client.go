package bgg

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/remixgames/backend/internal/logger"
)

// Client — клиент BGG XML API2 (поиск и карточки настольных игр).
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logrus.Entry
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.WithComponent("bgg"),
	}
}

// SearchResult — одна позиция из ответа поиска.
type SearchResult struct {
	BGGID         int
	Name          string
	YearPublished int
}

// GameDetails — развёрнутая карточка игры из /thing.
type GameDetails struct {
	BGGID         int
	Name          string
	YearPublished int
	ImageURL      string
	ThumbnailURL  string
	Description   string
	MinPlayers    int
	MaxPlayers    int
	PlayingTime   int
}

type searchXML struct {
	Items []struct {
		ID   int `xml:"id,attr"`
		Name struct {
			Value string `xml:"value,attr"`
		} `xml:"name"`
		YearPublished struct {
			Value string `xml:"value,attr"`
		} `xml:"yearpublished"`
	} `xml:"item"`
}

type thingXML struct {
	Items []struct {
		ID    int `xml:"id,attr"`
		Names []struct {
			Type  string `xml:"type,attr"`
			Value string `xml:"value,attr"`
		} `xml:"name"`
		YearPublished struct {
			Value string `xml:"value,attr"`
		} `xml:"yearpublished"`
		Image       string `xml:"image"`
		Thumbnail   string `xml:"thumbnail"`
		Description string `xml:"description"`
		MinPlayers  struct {
			Value string `xml:"value,attr"`
		} `xml:"minplayers"`
		MaxPlayers struct {
			Value string `xml:"value,attr"`
		} `xml:"maxplayers"`
		PlayingTime struct {
			Value string `xml:"value,attr"`
		} `xml:"playingtime"`
	} `xml:"item"`
}

// Search ищет настольные игры по названию.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	endpoint := fmt.Sprintf("%s/search?query=%s&type=boardgame", c.baseURL, url.QueryEscape(query))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var parsed searchXML
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("разбор XML ответа поиска: %w", err)
	}

	results := make([]SearchResult, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		results = append(results, SearchResult{
			BGGID:         item.ID,
			Name:          item.Name.Value,
			YearPublished: atoiSafe(item.YearPublished.Value),
		})
	}

	c.log.WithFields(logrus.Fields{"query": query, "count": len(results)}).Debug("Поиск BGG выполнен")
	return results, nil
}

// GetGame загружает карточку игры по её BGG id.
func (c *Client) GetGame(ctx context.Context, bggID int) (*GameDetails, error) {
	endpoint := fmt.Sprintf("%s/thing?id=%d", c.baseURL, bggID)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var parsed thingXML
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("разбор XML карточки игры: %w", err)
	}
	if len(parsed.Items) == 0 {
		return nil, fmt.Errorf("игра с bgg id %d не найдена", bggID)
	}

	item := parsed.Items[0]
	details := &GameDetails{
		BGGID:         item.ID,
		YearPublished: atoiSafe(item.YearPublished.Value),
		ImageURL:      item.Image,
		ThumbnailURL:  item.Thumbnail,
		Description:   item.Description,
		MinPlayers:    atoiSafe(item.MinPlayers.Value),
		MaxPlayers:    atoiSafe(item.MaxPlayers.Value),
		PlayingTime:   atoiSafe(item.PlayingTime.Value),
	}
	for _, name := range item.Names {
		if name.Type == "primary" {
			details.Name = name.Value
			break
		}
	}
	if details.Name == "" && len(item.Names) > 0 {
		details.Name = item.Names[0].Value
	}

	return details, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("создание запроса к BGG: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("запрос к BGG: %w", err)
	}
	defer resp.Body.Close()

	// BGG отвечает 202, пока готовит ответ в очереди.
	if resp.StatusCode == http.StatusAccepted {
		return nil, fmt.Errorf("BGG ещё готовит ответ, повторите запрос")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("BGG вернул статус %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("чтение ответа BGG: %w", err)
	}
	return body, nil
}

func atoiSafe(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
