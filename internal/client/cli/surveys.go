package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/dmitrijs2005/surveychain/internal/client/client"
	"github.com/dmitrijs2005/surveychain/internal/common"
	"github.com/dmitrijs2005/surveychain/internal/filex"
	"github.com/dmitrijs2005/surveychain/internal/netx"
	"github.com/dustin/go-humanize"
)

// exportDir is where downloaded exports land, relative to the working directory.
const exportDir = "exports"

// Test seams for the export download.
var (
	download     = netx.DownloadFromPresignedURL
	createExport = func(name string) (io.WriteCloser, string, error) {
		f, err := filex.CreateInSubdDir(exportDir, name)
		if err != nil {
			return nil, "", err
		}
		return f, f.Name(), nil
	}
)

var errNotLoggedIn = errors.New("not logged in")

func (a *App) requireLogin() error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please login first")
		return errNotLoggedIn
	}
	return nil
}

func (a *App) requireStaff() error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if !a.isStaff() {
		fmt.Fprintln(a.out, "This command is available to admins and moderators only")
		return common.ErrorForbidden
	}
	return nil
}

func points(n int) string {
	if n == 1 {
		return "1 point"
	}
	return humanize.Comma(int64(n)) + " points"
}

// Surveys lists all surveys. It does not need a login.
func (a *App) Surveys(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	surveys, err := a.client.ListSurveys(ctx)
	if err != nil {
		a.report("Could not list surveys", err)
		return err
	}

	if len(surveys) == 0 {
		fmt.Fprintln(a.out, "No surveys yet")
		return nil
	}
	for _, s := range surveys {
		fmt.Fprintf(a.out, "#%d %s [%s]: %s, %s answered\n",
			s.ID, s.Title, s.Status, points(s.Rewards), humanize.Comma(int64(s.TotalResponses)))
		fmt.Fprintf(a.out, "    %s\n", s.Description)
	}
	return nil
}

// Submit answers a survey. Participants answer for themselves; staff are
// asked whom they answer for.
func (a *App) Submit(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	surveyID, err := getID(a.reader, "Survey id", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	var email string
	if a.isStaff() {
		if email, err = getSimpleText(a.reader, "Participant email", a.out); err != nil {
			return err
		}
	}

	content, err := getMultiline(a.reader, "Your answer", a.out)
	if err != nil {
		return err
	}

	description, err := getSimpleText(a.reader, "Comment (optional)", a.out)
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	receipt, err := a.client.Submit(ctx, surveyID, email, content, description)
	if err != nil {
		a.report("Submission rejected", err)
		return err
	}

	fmt.Fprintf(a.out, "Accepted as response #%d (digest %s)\n", receipt.ResponseID, receipt.Digest)
	return nil
}

// Rewards prints a reward ledger and its total. Staff pick the participant.
func (a *App) Rewards(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	email := a.session.Email
	if a.isStaff() {
		var err error
		if email, err = getSimpleText(a.reader, "Participant email", a.out); err != nil {
			return err
		}
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	st, err := a.client.RewardsFor(ctx, email)
	if err != nil {
		a.report("Could not load rewards", err)
		return err
	}

	if len(st.Entries) == 0 {
		fmt.Fprintf(a.out, "%s has not earned any rewards yet\n", st.Email)
		return nil
	}
	for _, e := range st.Entries {
		fmt.Fprintf(a.out, "#%d %s: %s\n", e.SurveyID, e.Title, points(e.Points))
	}
	fmt.Fprintf(a.out, "Total for %s: %s\n", st.Email, points(st.Total))
	return nil
}

// Responses lists the responses to one survey.
func (a *App) Responses(ctx context.Context) error {
	if err := a.requireStaff(); err != nil {
		return err
	}

	surveyID, err := getID(a.reader, "Survey id", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	responses, err := a.client.ResponsesFor(ctx, surveyID)
	if err != nil {
		a.report("Could not list responses", err)
		return err
	}

	fmt.Fprintf(a.out, "%s response(s) for survey #%d\n", humanize.Comma(int64(len(responses))), surveyID)
	for _, r := range responses {
		line := fmt.Sprintf("#%d %s %s", r.ID, r.ParticipantEmail, r.Digest)
		if r.Description != "" {
			line += " " + r.Description
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}

// Export uploads the responses to a survey as CSV, prints the download link
// and offers to save the file locally.
func (a *App) Export(ctx context.Context) error {
	if err := a.requireStaff(); err != nil {
		return err
	}

	surveyID, err := getID(a.reader, "Survey id", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	callCtx, cancel := a.withTimeout(ctx)
	link, err := a.client.ExportResponses(callCtx, surveyID)
	cancel()
	if err != nil {
		a.report("Export failed", err)
		return err
	}

	fmt.Fprintf(a.out, "Exported %s row(s) to %s\n%s\n", humanize.Comma(int64(link.Rows)), link.Key, link.URL)

	answer, err := getSimpleText(a.reader, "Download to ./"+exportDir+"? [y/N]", a.out)
	if err != nil || !strings.EqualFold(answer, "y") {
		return nil
	}

	w, name, err := createExport(path.Base(link.Key))
	if err != nil {
		a.report("Could not create file", err)
		return err
	}
	defer w.Close()

	dlCtx, cancel := a.withTimeout(ctx)
	defer cancel()

	n, err := download(dlCtx, link.URL, w)
	if err != nil {
		a.report("Download failed", err)
		return err
	}

	fmt.Fprintf(a.out, "Saved %s to %s\n", humanize.Bytes(uint64(n)), name)
	return nil
}

// report prints a failure in user terms.
func (a *App) report(prefix string, err error) {
	fmt.Fprintf(a.out, "%s: %s\n", prefix, describe(err))
}

func describe(err error) string {
	switch {
	case errors.Is(err, common.ErrDuplicate):
		return "this survey has already been answered by this participant"
	case errors.Is(err, common.ErrSurveyNotFound):
		return "no such survey"
	case errors.Is(err, common.ErrParticipantNotFound):
		return "no such participant"
	case errors.Is(err, common.ErrTokenExpired):
		return "your session has expired, please login again"
	case errors.Is(err, common.ErrInvalidToken):
		return "your session is not valid, please login again"
	case errors.Is(err, client.ErrUnauthorized):
		return "wrong email or password"
	case errors.Is(err, common.ErrorForbidden):
		return "not allowed"
	case errors.Is(err, common.ErrorAlreadyExists):
		return "already exists"
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable, try again later"
	case errors.Is(err, common.ErrPersistenceFailure):
		return "the server could not store the request, try again later"
	default:
		return err.Error()
	}
}
