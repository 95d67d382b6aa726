package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/aboodsamad/TravelMateV0/client/assistant"
	"github.com/aboodsamad/TravelMateV0/client/auth"
	"github.com/aboodsamad/TravelMateV0/client/browse"
	"github.com/aboodsamad/TravelMateV0/client/dashboard"
	"github.com/aboodsamad/TravelMateV0/client/places"
	"github.com/aboodsamad/TravelMateV0/client/session"
	"github.com/aboodsamad/TravelMateV0/client/users"
	"github.com/aboodsamad/TravelMateV0/internal/config"
	"github.com/aboodsamad/TravelMateV0/internal/shared/geo"
)

func main() {
	cfg := config.Load()

	store, err := session.NewFileStore(cfg.SessionFile)
	if err != nil {
		log.Fatalf("session store: %v", err)
	}

	e := newExplorer(cfg, store, os.Stdout)
	e.loop(context.Background(), os.Stdin)
}

type explorer struct {
	out   io.Writer
	store session.Store

	placesClient *places.Client
	usersClient  *users.Client
	authClient   *auth.Client
	chat         *assistant.Chat

	ctrl *browse.Controller
	dash *dashboard.Aggregator
}

func newExplorer(cfg config.Config, store session.Store, out io.Writer) *explorer {
	e := &explorer{
		out:          out,
		store:        store,
		placesClient: places.New(cfg.APIBaseURL),
		usersClient:  users.New(cfg.APIBaseURL, store),
		authClient:   auth.New(cfg.APIBaseURL, store),
		chat:         assistant.NewChat(cfg.GenerativeURL, cfg.GenerativeAPIKey),
	}
	e.ctrl = browse.NewController(e.placesClient, e.renderBrowse)
	e.dash = dashboard.NewAggregator(e.placesClient, e.renderDashboard)
	return e
}

func (e *explorer) loop(ctx context.Context, in io.Reader) {
	fmt.Fprintln(e.out, "TravelMate explorer. Type 'help' for commands.")
	e.ctrl.Refresh(ctx)

	scanner := bufio.NewScanner(in)
	fmt.Fprint(e.out, "> ")
	for scanner.Scan() {
		if !e.handle(ctx, scanner.Text()) {
			return
		}
		fmt.Fprint(e.out, "> ")
	}
}

// handle runs one command line. It returns false when the session ends.
func (e *explorer) handle(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "quit", "exit":
		return false
	case "help":
		e.printHelp()
	case "search":
		e.ctrl.SetSearch(ctx, strings.Join(args, " "))
	case "filter":
		if len(args) < 2 {
			fmt.Fprintln(e.out, "usage: filter <country|category|accommodation> <value>")
			break
		}
		e.ctrl.SetFilter(ctx, args[0], strings.Join(args[1:], " "))
	case "clear":
		e.ctrl.ClearFilters(ctx)
	case "sort":
		if len(args) != 1 {
			fmt.Fprintln(e.out, "usage: sort <column>")
			break
		}
		e.ctrl.Sort(ctx, args[0])
	case "next":
		e.ctrl.NextPage(ctx)
	case "prev":
		e.ctrl.PrevPage(ctx)
	case "page":
		n, err := strconv.Atoi(argOr(args, 0, "1"))
		if err != nil {
			fmt.Fprintln(e.out, "usage: page <number>")
			break
		}
		e.ctrl.GoToPage(ctx, n)
	case "filters":
		e.showFilterOptions(ctx)
	case "dashboard":
		e.dash.SetCountry(ctx, argOr(args, 0, ""))
		e.dash.SetCategory(ctx, argOr(args, 1, ""))
	case "login":
		if len(args) != 2 {
			fmt.Fprintln(e.out, "usage: login <email> <password>")
			break
		}
		e.report(func() error {
			u, err := e.authClient.Login(ctx, args[0], args[1])
			if err == nil {
				fmt.Fprintf(e.out, "welcome back, %s\n", u.Name)
			}
			return err
		})
	case "signup":
		if len(args) != 4 {
			fmt.Fprintln(e.out, "usage: signup <name> <email> <password> <confirm>")
			break
		}
		e.report(func() error {
			u, err := e.authClient.Signup(ctx, args[0], args[1], args[2], args[3])
			if err == nil {
				fmt.Fprintf(e.out, "account created for %s\n", u.Email)
			}
			return err
		})
	case "logout":
		e.report(func() error { return e.authClient.Logout(ctx) })
	case "profile":
		e.report(func() error {
			u, err := e.usersClient.Profile(ctx)
			if err == nil {
				fmt.Fprintf(e.out, "%s <%s> since %s\n", u.Name, u.Email, u.CreatedAt.Format("2006-01-02"))
			}
			return err
		})
	case "update":
		if len(args) != 2 {
			fmt.Fprintln(e.out, "usage: update <name> <email>")
			break
		}
		e.report(func() error {
			_, err := e.usersClient.UpdateProfile(ctx, args[0], args[1])
			return err
		})
	case "logs":
		page, _ := strconv.Atoi(argOr(args, 0, "1"))
		e.report(func() error {
			logs, err := e.usersClient.Logs(ctx, page, 20)
			if err != nil {
				return err
			}
			for _, l := range logs {
				fmt.Fprintf(e.out, "%s  %-15s %s\n", l.CreatedAt.Format("2006-01-02 15:04"), l.Action, l.Description)
			}
			return nil
		})
	case "liked":
		e.report(func() error {
			liked, err := e.usersClient.LikedPlaces(ctx)
			if err != nil {
				return err
			}
			for _, lp := range liked {
				fmt.Fprintf(e.out, "%d  %s (%s)  you: %s\n", lp.ID, lp.Location, lp.Country, browse.RenderRating(userRating(lp.UserRating)))
			}
			return nil
		})
	case "like":
		if len(args) < 1 {
			fmt.Fprintln(e.out, "usage: like <place-id> [rating]")
			break
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Fprintln(e.out, "usage: like <place-id> [rating]")
			break
		}
		var rating *int
		if len(args) > 1 {
			if n, err := strconv.Atoi(args[1]); err == nil {
				rating = &n
			}
		}
		e.report(func() error { return e.usersClient.Like(ctx, id, rating) })
	case "unlike":
		id, err := strconv.ParseInt(argOr(args, 0, ""), 10, 64)
		if err != nil {
			fmt.Fprintln(e.out, "usage: unlike <place-id>")
			break
		}
		e.report(func() error { return e.usersClient.Unlike(ctx, id) })
	case "near":
		if len(args) != 2 {
			fmt.Fprintln(e.out, "usage: near <lat> <lon>")
			break
		}
		lat, err1 := strconv.ParseFloat(args[0], 64)
		lon, err2 := strconv.ParseFloat(args[1], 64)
		if err1 != nil || err2 != nil {
			fmt.Fprintln(e.out, "usage: near <lat> <lon>")
			break
		}
		e.showNearest(lat, lon)
	case "chat":
		question := strings.Join(args, " ")
		if question == "" {
			fmt.Fprintln(e.out, "usage: chat <question>")
			break
		}
		reply := e.chat.Send(ctx, question, e.ctrl.Snapshot().Places)
		fmt.Fprintf(e.out, "assistant: %s\n", reply.Content)
	default:
		fmt.Fprintf(e.out, "unknown command %q, try 'help'\n", cmd)
	}
	return true
}

func (e *explorer) report(fn func() error) {
	if err := fn(); err != nil {
		fmt.Fprintf(e.out, "error: %s\n", err)
	}
}

func (e *explorer) showFilterOptions(ctx context.Context) {
	e.report(func() error {
		opts, err := e.placesClient.FilterOptions(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(e.out, "countries: %s\n", strings.Join(opts.Countries, ", "))
		fmt.Fprintf(e.out, "categories: %s\n", strings.Join(opts.Categories, ", "))
		fmt.Fprintf(e.out, "accommodations: %s\n", strings.Join(opts.Accommodations, ", "))
		return nil
	})
}

// showNearest reorders the places on the current page by distance from
// the given point.
func (e *explorer) showNearest(lat, lon float64) {
	snap := e.ctrl.Snapshot()
	if len(snap.Places) == 0 {
		fmt.Fprintln(e.out, "no places loaded")
		return
	}

	type withDistance struct {
		place places.Place
		km    float64
	}
	ranked := make([]withDistance, 0, len(snap.Places))
	for _, p := range snap.Places {
		ranked = append(ranked, withDistance{p, geo.HaversineKm(lat, lon, p.Latitude, p.Longitude)})
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].km < ranked[j].km })

	for _, r := range ranked {
		fmt.Fprintf(e.out, "%6.1f km  %s (%s)\n", r.km, r.place.Location, r.place.Country)
	}
}

func (e *explorer) renderBrowse(snap browse.Snapshot) {
	switch snap.Status {
	case browse.StatusErrored:
		fmt.Fprintf(e.out, "error: %s\n", snap.Err)
	case browse.StatusLoaded:
		w := tabwriter.NewWriter(e.out, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tLOCATION\tCOUNTRY\tCATEGORY\tVISITORS\tRATING")
		for _, p := range snap.Places {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
				p.ID, p.Location, p.Country, p.Category, p.Visitors, browse.RenderRating(p.Rating))
		}
		w.Flush()
		fmt.Fprintf(e.out, "page %d of %d (%d places)\n", snap.Query.Page, snap.TotalPages, snap.TotalRecords)
	}
}

func (e *explorer) renderDashboard(snap dashboard.Snapshot) {
	switch snap.Status {
	case dashboard.StatusErrored:
		fmt.Fprintf(e.out, "dashboard error: %s\n", snap.Err)
	case dashboard.StatusLoaded:
		fmt.Fprintf(e.out, "places: %d  avg rating: %.1f  avg visitors: %.0f  rating range: %.1f-%.1f\n",
			snap.Stats.TotalPlaces, snap.Stats.AvgRating, snap.Stats.AvgVisitors,
			snap.Stats.MinRating, snap.Stats.MaxRating)
		for i, p := range snap.TopPlaces {
			fmt.Fprintf(e.out, "%2d. %s (%s), %d visitors\n", i+1, p.Location, p.Country, p.Visitors)
		}
	}
}

func (e *explorer) printHelp() {
	fmt.Fprint(e.out, `commands:
  search <term>                     full-text search
  filter <field> <value>            set country/category/accommodation filter
  clear                             clear all filters
  sort <column>                     toggle sort on a column
  next | prev | page <n>            pagination
  filters                           list available filter values
  dashboard [country] [category]    show stats and top places
  login <email> <password>
  signup <name> <email> <pass> <confirm>
  logout | profile | update <name> <email>
  logs [page] | liked | like <id> [rating] | unlike <id>
  near <lat> <lon>                  rank the current page by distance
  chat <question>                   ask the travel assistant
  quit
`)
}

func argOr(args []string, i int, def string) string {
	if i < len(args) {
		return args[i]
	}
	return def
}

func userRating(r *int) any {
	if r == nil {
		return nil
	}
	return *r
}
