package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/hay-kot/git-time-machine/internal/core/activity"
	"github.com/hay-kot/git-time-machine/internal/core/git"
	"github.com/hay-kot/git-time-machine/internal/core/styles"
)

// View titles.
const (
	TitleOverview     = "Overview"
	TitleRecent       = "Recent Commits"
	TitleActivity     = "Activity"
	TitleBranches     = "Branches"
	TitleCodeChanges  = "Code Analysis"
	TitleContributors = "Contributors"
	TitleCommit       = "Commit"
	TitleCompare      = "Compare"
)

const labelWidth = 16

// sparkWidth caps the activity graph so it fits in an 80 column box.
const sparkWidth = 60

func kv(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%s%s\n", styles.TextMutedStyle.Render(fmt.Sprintf("%-*s", labelWidth, label)), value)
}

func relTime(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// Stat renders a DiffStat with coloured additions and deletions.
func Stat(d git.DiffStat) string {
	if d.IsZero() {
		return styles.TextMutedStyle.Render("no changes")
	}
	return fmt.Sprintf("%s %s, %s, %s",
		humanize.Comma(int64(d.Files)),
		pluralize(d.Files, "file changed", "files changed"),
		styles.GitAdditionsStyle.Render("+"+humanize.Comma(int64(d.Additions))),
		styles.GitDeletionsStyle.Render("-"+humanize.Comma(int64(d.Deletions))),
	)
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func RenderOverview(o Overview, now time.Time) string {
	var b strings.Builder

	kv(&b, "Total commits", styles.TextSuccessStyle.Render(humanize.Comma(int64(o.TotalCommits))))
	kv(&b, "Current branch", styles.GitBranchStyle.Render(o.Branch))
	if o.Revision != "" && o.Revision != o.Branch {
		kv(&b, "Analysing", styles.GitBranchStyle.Render(o.Revision))
	}

	window := fmt.Sprintf("%s %s", styles.TextSuccessStyle.Render(humanize.Comma(int64(o.WindowCommits))), pluralize(o.WindowCommits, "commit", "commits"))
	if o.Author != "" {
		window += " by " + styles.GitAuthorStyle.Render(o.Author)
	}
	kv(&b, fmt.Sprintf("Last %d days", o.Days), window)

	if o.LastCommit != nil {
		c := o.LastCommit
		kv(&b, "Latest", fmt.Sprintf("%s %s %s",
			styles.GitHashStyle.Render(c.ShortHash),
			c.Subject,
			styles.TextMutedStyle.Render("("+relTime(c.Date, now)+")"),
		))
	}

	if o.Changes != nil {
		kv(&b, "Changes", Stat(*o.Changes))
	}
	if len(o.Activity) > 0 {
		kv(&b, "Activity", styles.SparklineStyle.Render(activity.Sparkline(activity.Compress(o.Activity.Counts(), sparkWidth))))
	}

	return strings.TrimRight(b.String(), "\n")
}

func RenderCommits(commits []git.Commit, now time.Time) string {
	if len(commits) == 0 {
		return styles.TextMutedStyle.Render("No commits found")
	}

	lines := make([]string, len(commits))
	for i, c := range commits {
		lines[i] = fmt.Sprintf("%s %s %s %s",
			styles.GitHashStyle.Render(c.ShortHash),
			c.Subject,
			styles.TextMutedStyle.Render("("+relTime(c.Date, now)+")"),
			styles.GitAuthorStyle.Render("<"+c.Author+">"),
		)
	}
	return strings.Join(lines, "\n")
}

func RenderActivity(series activity.Series) string {
	if len(series) == 0 {
		return styles.TextMutedStyle.Render("No activity")
	}

	var b strings.Builder

	first, last := series[0].Date, series[len(series)-1].Date
	b.WriteString(styles.SparklineStyle.Render(activity.Sparkline(activity.Compress(series.Counts(), sparkWidth))))
	b.WriteString("\n")
	b.WriteString(styles.TextMutedStyle.Render(first.Format("Jan 2") + " to " + last.Format("Jan 2")))
	b.WriteString("\n\n")

	total := series.Total()
	kv(&b, "Commits", fmt.Sprintf("%s over %d days", humanize.Comma(int64(total)), len(series)))
	kv(&b, "Active days", fmt.Sprintf("%d of %d", series.ActiveDays(), len(series)))
	if busiest, ok := series.Busiest(); ok {
		kv(&b, "Busiest day", fmt.Sprintf("%s (%d %s)", busiest.Date.Format("Mon Jan 2"), busiest.Commits, pluralize(busiest.Commits, "commit", "commits")))
	}

	return strings.TrimRight(b.String(), "\n")
}

func RenderBranches(br Branches) string {
	var b strings.Builder

	b.WriteString(styles.TextSuccessStyle.Render("* " + br.Current))
	b.WriteString("\n")

	if len(br.Remote) == 0 {
		b.WriteString(styles.TextMutedStyle.Render("No remote branches"))
		return b.String()
	}

	for _, r := range br.Remote {
		b.WriteString("  " + styles.GitBranchStyle.Render(r) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderCodeChanges(c CodeChanges) string {
	var b strings.Builder

	kv(&b, "Since", c.Since.Format("Jan 2, 2006"))
	kv(&b, "Changes", Stat(c.Stat))
	b.WriteString("\n")
	b.WriteString(styles.TextForegroundBoldStyle.Render("Most Active Files"))
	b.WriteString("\n")
	b.WriteString(styles.DividerStyle.Render(strings.Repeat("─", 20)))
	b.WriteString("\n")

	if len(c.Files) == 0 {
		b.WriteString(styles.TextMutedStyle.Render("No files changed"))
		return b.String()
	}

	width := len(fmt.Sprint(c.Files[0].Count))
	for _, f := range c.Files {
		fmt.Fprintf(&b, "%s  %s\n", styles.TextSuccessStyle.Render(fmt.Sprintf("%*d", width, f.Count)), f.Path)
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderContributors(contributors []git.Contributor) string {
	if len(contributors) == 0 {
		return styles.TextMutedStyle.Render("No contributors")
	}

	lines := make([]string, len(contributors))
	for i, c := range contributors {
		line := styles.TextSuccessStyle.Render(fmt.Sprintf("%-6d", c.Commits)) + " " + styles.TextForegroundStyle.Render(c.Name)
		if c.Email != "" {
			line += " " + styles.TextMutedStyle.Render("<"+c.Email+">")
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func RenderCommitDetail(d git.CommitDetail, now time.Time) string {
	var b strings.Builder

	kv(&b, "Commit", styles.GitHashStyle.Render(d.Hash))
	kv(&b, "Author", fmt.Sprintf("%s <%s>", styles.GitAuthorStyle.Render(d.Author), d.Email))
	kv(&b, "Date", fmt.Sprintf("%s %s", d.Date.Format(time.RFC1123Z), styles.TextMutedStyle.Render("("+relTime(d.Date, now)+")")))
	b.WriteString("\n")
	b.WriteString(styles.TextForegroundBoldStyle.Render(d.Subject))
	b.WriteString("\n")

	if body := strings.TrimSpace(d.Body); body != "" {
		b.WriteString("\n" + body + "\n")
	}
	if stat := strings.TrimRight(d.Stat, "\n"); stat != "" {
		b.WriteString("\n" + stat + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func RenderComparison(c Comparison) string {
	var b strings.Builder

	kv(&b, "From", styles.GitHashStyle.Render(c.From))
	kv(&b, "To", styles.GitHashStyle.Render(c.To))
	kv(&b, "Changes", Stat(c.Stat))

	return strings.TrimRight(b.String(), "\n")
}
