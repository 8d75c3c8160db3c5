package main

import (
	"github.com/urfave/cli/v2"

	"github.com/forgo/gather/internal/handler"
	"github.com/forgo/gather/internal/model"
)

type handlers struct {
	auth      *handler.AuthHandler
	discovery *handler.DiscoveryHandler
	rooms     *handler.RoomsHandler
	profile   *handler.ProfileHandler
	create    *handler.CreateHandler
	address   *handler.AddressHandler
}

func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "city", Usage: "only show this city"},
		&cli.StringFlag{Name: "name", Usage: "only show names containing this text"},
		&cli.StringFlag{Name: "date", Usage: "only show items starting on this day (YYYY-MM-DD)"},
		&cli.StringFlag{Name: "age", Usage: "only show items open to this age"},
		&cli.StringFlag{Name: "view", Usage: "'map' or 'list'"},
		&cli.IntFlag{Name: "width", Usage: "viewport width in pixels"},
		&cli.StringFlag{Name: "select", Usage: "id of the item to open"},
	}
}

func createFlags(kind model.EntityKind) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{Name: "name", Usage: "title"},
		&cli.StringFlag{Name: "description"},
		&cli.StringFlag{Name: "image", Usage: "image URL"},
		&cli.StringFlag{Name: "city"},
		&cli.StringFlag{Name: "start", Usage: "local start time (YYYY-MM-DDTHH:MM)"},
		&cli.StringFlag{Name: "end", Usage: "local end time (YYYY-MM-DDTHH:MM)"},
		&cli.IntFlag{Name: "max", Usage: "maximum participants"},
		&cli.StringFlag{Name: "access", Value: string(model.AccessPublic), Usage: "'public' or 'private'"},
		&cli.IntFlag{Name: "age", Usage: "minimum age"},
		&cli.Float64Flag{Name: "price"},
		&cli.StringFlag{Name: "requirements"},
		&cli.StringSliceFlag{Name: "interest", Usage: "interest id, repeatable"},
		&cli.StringFlag{Name: "address", Usage: "address to look up"},
		&cli.IntFlag{Name: "pick", Value: 1, Usage: "which address suggestion to use"},
		&cli.Float64Flag{Name: "lat", Usage: "use this latitude instead of an address"},
		&cli.Float64Flag{Name: "lon", Usage: "use this longitude instead of an address"},
	}
	if kind == model.KindGroup {
		flags = append(flags, &cli.StringFlag{Name: "type", Value: model.GroupTypeLongTerm, Usage: "group type"})
	}
	return flags
}

func entityCommand(h handlers, kind model.EntityKind) *cli.Command {
	return &cli.Command{
		Name:  string(kind),
		Usage: "show or join one " + string(kind),
		Subcommands: []*cli.Command{
			{Name: "show", Usage: "show details and participants", ArgsUsage: "ID", Action: h.discovery.Show(kind)},
			{Name: "join", Usage: "join, or apply when access is private", ArgsUsage: "ID", Action: h.discovery.Join(kind)},
		},
	}
}

func newApp(h handlers) *cli.App {
	return &cli.App{
		Name:                 "gather",
		Usage:                "discover and join events and groups",
		EnableBashCompletion: true,
		ExitErrHandler:       func(*cli.Context, error) {},
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "sign in",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email"},
					&cli.StringFlag{Name: "password", EnvVars: []string{"GATHER_PASSWORD"}},
				},
				Action: h.auth.Login,
			},
			{Name: "logout", Usage: "sign out", Action: h.auth.Logout},
			{Name: "whoami", Usage: "show the signed-in user", Action: h.auth.WhoAmI},
			{Name: "events", Usage: "list events", Flags: filterFlags(), Action: h.discovery.List(model.KindEvent)},
			entityCommand(h, model.KindEvent),
			{Name: "groups", Usage: "list groups", Flags: filterFlags(), Action: h.discovery.List(model.KindGroup)},
			entityCommand(h, model.KindGroup),
			{Name: "rooms", Usage: "list the groups you run and belong to", Action: h.rooms.Rooms},
			{
				Name:  "profile",
				Usage: "show or edit your profile",
				Subcommands: []*cli.Command{
					{Name: "show", Action: h.profile.Show},
					{
						Name: "edit",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "username"},
							&cli.IntFlag{Name: "age"},
							&cli.StringFlag{Name: "city"},
							&cli.StringFlag{Name: "bio"},
							&cli.StringFlag{Name: "language", Usage: "'ru' or 'en'"},
							&cli.StringSliceFlag{Name: "interest", Usage: "interest id, repeatable"},
						},
						Action: h.profile.Edit,
					},
					{Name: "interests", Usage: "list selectable interests", Action: h.profile.Interests},
				},
			},
			{
				Name:  "create",
				Usage: "create an event or a group",
				Subcommands: []*cli.Command{
					{Name: "event", Flags: createFlags(model.KindEvent), Action: h.create.Create(model.KindEvent)},
					{Name: "group", Flags: createFlags(model.KindGroup), Action: h.create.Create(model.KindGroup)},
				},
			},
			{
				Name:  "address",
				Usage: "look up addresses",
				Subcommands: []*cli.Command{
					{Name: "search", ArgsUsage: "TEXT", Action: h.address.Search},
					{Name: "reverse", ArgsUsage: "LAT LON", Action: h.address.Reverse},
				},
			},
		},
	}
}
