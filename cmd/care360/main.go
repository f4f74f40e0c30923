package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/care360/care360/internal/api"
	"github.com/care360/care360/internal/config"
	"github.com/care360/care360/internal/domain/appointment"
	"github.com/care360/care360/internal/domain/schedule"
	"github.com/care360/care360/internal/platform/session"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "care360",
		Short: "Care360 appointment booking client",
	}

	rootCmd.AddCommand(registerCmd())
	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(whoamiCmd())
	rootCmd.AddCommand(doctorsCmd())
	rootCmd.AddCommand(availabilityCmd())
	rootCmd.AddCommand(locationCmd())
	rootCmd.AddCommand(slotCmd())
	rootCmd.AddCommand(bookCmd())
	rootCmd.AddCommand(appointmentsCmd())
	rootCmd.AddCommand(upcomingCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app bundles everything a command needs: config, logger, session store and
// the API clients scoped to the signed-in user.
type app struct {
	cfg     *config.Config
	logger  zerolog.Logger
	store   *session.Store
	sess    session.Session
	auth    *api.AuthClient
	doctor  *api.DoctorClient
	patient *api.PatientClient
}

func newApp(requireAuth bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if !cfg.IsProduction() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && lvl != zerolog.NoLevel {
		logger = logger.Level(lvl)
	} else {
		logger = logger.Level(zerolog.WarnLevel)
	}

	var store *session.Store
	if cfg.SessionFile != "" {
		store = session.NewStoreAt(cfg.SessionFile)
	} else {
		store, err = session.NewStore()
		if err != nil {
			return nil, err
		}
	}

	a := &app{cfg: cfg, logger: logger, store: store}

	apiCfg := api.NewConfig(cfg.APIBaseURL)
	apiCfg.HTTPClient.Timeout = cfg.Timeout()
	apiCfg.Logger = logger

	if requireAuth {
		sess, err := store.Load()
		if err != nil {
			return nil, err
		}
		if claims, err := session.PeekClaims(sess.Token); err == nil && claims.Expired(time.Now()) {
			_ = store.Clear()
			return nil, session.ErrNoSession
		}
		a.sess = sess
		apiCfg = apiCfg.WithToken(sess.Token)
	}

	a.auth = &api.AuthClient{Config: apiCfg}
	a.doctor = &api.DoctorClient{Config: apiCfg}
	a.patient = &api.PatientClient{Config: apiCfg}
	return a, nil
}

// scheduleService builds the availability view for the signed-in doctor, or
// for another doctor's public feed when doctorID is set.
func (a *app) scheduleService(ctx context.Context, doctorID string) (*schedule.Service, error) {
	gw := &api.ScheduleGateway{Doctor: a.doctor, Patient: a.patient, DoctorID: doctorID}
	svc := schedule.NewService(gw)
	if err := svc.Refresh(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

func (a *app) appointmentService(ctx context.Context) (*appointment.Service, error) {
	svc := appointment.NewService(&api.AppointmentGateway{Patient: a.patient})
	if err := svc.Refresh(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

func prompt(label string) (string, error) {
	fmt.Print(label + ": ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(label string) (string, error) {
	fmt.Print(label + ": ")
	data, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// confirm asks before an irrecoverable action. The --yes flag on the calling
// command bypasses it.
func confirm(question string) bool {
	answer, err := prompt(question + " [y/N]")
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

func registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}

			req := api.RegisterRequest{}
			req.Role, _ = cmd.Flags().GetString("role")
			if req.Role != "doctor" && req.Role != "patient" {
				return fmt.Errorf("--role must be doctor or patient, got %q", req.Role)
			}
			if req.FirstName, err = prompt("First name"); err != nil {
				return err
			}
			if req.LastName, err = prompt("Last name"); err != nil {
				return err
			}
			if req.Email, err = prompt("Email"); err != nil {
				return err
			}
			if req.Password, err = promptPassword("Password"); err != nil {
				return err
			}
			if req.Role == "doctor" {
				if req.Specialty, err = prompt("Specialty"); err != nil {
					return err
				}
			}

			if err := a.auth.Register(cmd.Context(), req); err != nil {
				return err
			}
			fmt.Println("Account created. Sign in with: care360 login")
			return nil
		},
	}
	cmd.Flags().String("role", "patient", "Account role (doctor or patient)")
	return cmd
}

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}

			req := api.LoginRequest{}
			req.Role, _ = cmd.Flags().GetString("role")
			if req.Email, err = prompt("Email"); err != nil {
				return err
			}
			if req.Password, err = promptPassword("Password"); err != nil {
				return err
			}

			user, err := a.auth.Login(cmd.Context(), req)
			if err != nil {
				return err
			}
			if user.Token == "" {
				return fmt.Errorf("login succeeded but no token was returned")
			}

			err = a.store.Save(session.Session{
				Token:     user.Token,
				Role:      user.Role,
				UserID:    user.ID,
				Email:     user.Email,
				FirstName: user.FirstName,
				LastName:  user.LastName,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Signed in as %s %s (%s)\n", user.FirstName, user.LastName, user.Role)
			return nil
		},
	}
	cmd.Flags().String("role", "patient", "Account role (doctor or patient)")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}
			if err := a.store.Clear(); err != nil {
				return err
			}
			fmt.Println("Signed out.")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user, verified against the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(true)
			if err != nil {
				return err
			}
			user, err := a.auth.Verify(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%s %s <%s> role=%s\n", user.FirstName, user.LastName, user.Email, user.Role)
			return nil
		},
	}
}

func doctorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctors",
		Short: "List doctors",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(true)
			if err != nil {
				return err
			}
			doctors, err := a.patient.ListDoctors(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSPECIALTY\tCITY")
			for _, d := range doctors {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.ID, d.User.FullName(), d.Specialty, d.Address.City)
			}
			return w.Flush()
		},
	}
}

func availabilityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "availability [doctor-id]",
		Short: "Show available slots, grouped by location and date",
		Long: "Without arguments, shows the signed-in doctor's own schedule. " +
			"With a doctor id, shows that doctor's bookable availability.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(true)
			if err != nil {
				return err
			}
			doctorID := ""
			if len(args) > 0 {
				doctorID = args[0]
			}
			svc, err := a.scheduleService(cmd.Context(), doctorID)
			if err != nil {
				return err
			}

			for _, group := range svc.Groups() {
				fmt.Printf("%s, %s (%s, %s)\n", group.Location.Name, group.Location.Address, group.Location.City, group.Location.State)
				days, byDay := schedule.GroupByDate(group.Slots)
				if len(days) == 0 {
					fmt.Println("  no slots declared")
					continue
				}
				for _, day := range days {
					fmt.Printf("  %s:", day)
					for _, slot := range byDay[day] {
						marker := ""
						if slot.IsBooked {
							marker = "*"
						}
						fmt.Printf(" %s-%s%s", slot.StartTime, slot.EndTime, marker)
					}
					fmt.Println()
				}
			}
			fmt.Println("(* = booked)")
			return nil
		},
	}
}

func locationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "location",
		Short: "Manage consultation locations",
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a consultation location",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(true)
			if err != nil {
				return err
			}
			loc, err := promptLocation()
			if err != nil {
				return err
			}
			svc, err := a.scheduleService(cmd.Context(), "")
			if err != nil {
				return err
			}
			if err := svc.AddLocation(cmd.Context(), loc); err != nil {
				return err
			}
			fmt.Printf("Location %q added.\n", loc.Name)
			return nil
		},
	}

	updateCmd := &cobra.Command{
		Use:   "update <location-key>",
		Short: "Update a consultation location's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(true)
			if err != nil {
				return err
			}
			details, err := promptLocation()
			if err != nil {
				return err
			}
			svc, err := a.scheduleService(cmd.Context(), "")
			if err != nil {
				return err
			}
			if err := svc.UpdateLocation(cmd.Context(), args[0], details); err != nil {
				return err
			}
			fmt.Printf("Location updated to %q.\n", details.Name)
			return nil
		},
	}

	cmd.AddCommand(addCmd)
	cmd.AddCommand(updateCmd)
	return cmd
}

func promptLocation() (schedule.ConsultationLocation, error) {
	var loc schedule.ConsultationLocation
	var err error
	if loc.Name, err = prompt("Name"); err != nil {
		return loc, err
	}
	if loc.Address, err = prompt("Address"); err != nil {
		return loc, err
	}
	if loc.City, err = prompt("City"); err != nil {
		return loc, err
	}
	if loc.State, err = prompt("State"); err != nil {
		return loc, err
	}
	return loc, nil
}

func slotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slot",
		Short: "Manage availability slots",
	}

	addCmd := &cobra.Command{
		Use:   "add <location-key> <date> <start> <end>",
		Short: "Declare a new slot (date YYYY-MM-DD, times HH:MM)",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(true)
			if err != nil {
				return err
			}
			if !validWindow(args[2], args[3]) {
				return fmt.Errorf("%s-%s is not a clinic window; slots run in half-hour steps from 08:00 to 18:00", args[2], args[3])
			}
			svc, err := a.scheduleService(cmd.Context(), "")
			if err != nil {
				return err
			}
			slot, err := svc.AddSlot(cmd.Context(), args[0], args[1], args[2], args[3])
			if err != nil {
				return err
			}
			fmt.Printf("Slot %s %s-%s added.\n", slot.Date, slot.StartTime, slot.EndTime)
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <location-key> <date> <start> <end>",
		Short: "Delete an unbooked slot",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(true)
			if err != nil {
				return err
			}
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes && !confirm(fmt.Sprintf("Delete slot %s %s-%s? This cannot be undone.", args[1], args[2], args[3])) {
				fmt.Println("Aborted.")
				return nil
			}
			svc, err := a.scheduleService(cmd.Context(), "")
			if err != nil {
				return err
			}
			slot := schedule.TimeSlot{Date: args[1], StartTime: args[2], EndTime: args[3]}
			if err := svc.DeleteSlot(cmd.Context(), args[0], slot); err != nil {
				return err
			}
			fmt.Println("Slot deleted.")
			return nil
		},
	}
	deleteCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")

	cmd.AddCommand(addCmd)
	cmd.AddCommand(deleteCmd)
	return cmd
}

// validWindow reports whether (start, end) is one of the fixed half-hour
// windows a doctor may post.
func validWindow(start, end string) bool {
	for _, s := range schedule.DaySlots() {
		if s.StartTime == start && s.EndTime == end {
			return true
		}
	}
	return false
}

func bookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "book <doctor-id> <location-key> <date> <start> <end>",
		Short: "Book an available slot",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(true)
			if err != nil {
				return err
			}
			reason, _ := cmd.Flags().GetString("reason")
			if reason == "" {
				if reason, err = prompt("Reason for the appointment"); err != nil {
					return err
				}
			}
			svc, err := a.scheduleService(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			slot := schedule.TimeSlot{Date: args[2], StartTime: args[3], EndTime: args[4]}
			conf, err := svc.BookSlot(cmd.Context(), args[0], args[1], slot, reason)
			if err != nil {
				return err
			}
			fmt.Println(conf.Message())
			return nil
		},
	}
	cmd.Flags().String("reason", "", "Reason for the appointment")
	return cmd
}

func appointmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "appointments",
		Short: "List your appointments",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(true)
			if err != nil {
				return err
			}
			svc, err := a.appointmentService(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDOCTOR\tDATE\tTIME\tSTATUS\tCANCELABLE")
			for _, appt := range svc.Appointments() {
				cancelable := "no"
				if svc.CanCancel(appt.ID) {
					cancelable = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s-%s\t%s\t%s\n",
					appt.ID, appt.Doctor.User.FullName(), appt.Day(), appt.StartTime, appt.EndTime, appt.Status, cancelable)
			}
			return w.Flush()
		},
	}

	cancelCmd := &cobra.Command{
		Use:   "cancel <appointment-id>",
		Short: "Cancel an upcoming appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(true)
			if err != nil {
				return err
			}
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes && !confirm("Cancel this appointment?") {
				fmt.Println("Aborted.")
				return nil
			}
			svc, err := a.appointmentService(cmd.Context())
			if err != nil {
				return err
			}
			if err := svc.Cancel(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Appointment cancelled.")
			return nil
		},
	}
	cancelCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")

	cmd.AddCommand(cancelCmd)
	return cmd
}

func upcomingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upcoming",
		Short: "List your upcoming appointments as a doctor",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(true)
			if err != nil {
				return err
			}
			appts, err := a.doctor.UpcomingAppointments(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tTIME\tPATIENT\tLOCATION\tREASON")
			for _, appt := range appts {
				patient := ""
				if appt.Patient != nil {
					patient = appt.Patient.User.FullName()
				}
				fmt.Fprintf(w, "%s\t%s-%s\t%s\t%s\t%s\n",
					appt.Day(), appt.StartTime, appt.EndTime, patient, appt.Location.Name, appt.Reason)
			}
			return w.Flush()
		},
	}
}
