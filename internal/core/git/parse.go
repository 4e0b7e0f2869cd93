package git

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"

	// logFormat yields one commit per line: hash, short hash, author, email, date, subject.
	logFormat = "%H%x1f%h%x1f%an%x1f%ae%x1f%aI%x1f%s"
	// showFormat adds the body and terminates the header so the --stat block can be split off.
	showFormat = logFormat + "%x1f%b%x1e"
)

func parseCommitFields(fields []string) (Commit, error) {
	if len(fields) < 6 {
		return Commit{}, fmt.Errorf("malformed commit record: %d fields", len(fields))
	}

	date, err := time.Parse(time.RFC3339, fields[4])
	if err != nil {
		return Commit{}, fmt.Errorf("parse date %q: %w", fields[4], err)
	}

	return Commit{
		Hash:      fields[0],
		ShortHash: fields[1],
		Author:    fields[2],
		Email:     fields[3],
		Date:      date,
		Subject:   fields[5],
	}, nil
}

func parseLog(output string) ([]Commit, error) {
	var commits []Commit
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		c, err := parseCommitFields(strings.SplitN(line, fieldSep, 6))
		if err != nil {
			return nil, err
		}
		commits = append(commits, c)
	}
	return commits, nil
}

func parseShow(output string) (CommitDetail, error) {
	header, stat, ok := strings.Cut(output, recordSep)
	if !ok {
		return CommitDetail{}, fmt.Errorf("malformed show output")
	}

	fields := strings.SplitN(strings.TrimLeft(header, "\n"), fieldSep, 7)
	c, err := parseCommitFields(fields)
	if err != nil {
		return CommitDetail{}, err
	}

	detail := CommitDetail{Commit: c, Stat: strings.Trim(stat, "\n")}
	if len(fields) == 7 {
		detail.Body = strings.TrimSpace(fields[6])
	}
	return detail, nil
}

// parseShortlog parses `git shortlog -sne` output.
// Example: "    42\tJane Doe <jane@example.com>"
func parseShortlog(output string) []Contributor {
	var contributors []Contributor
	for _, line := range strings.Split(output, "\n") {
		count, who, ok := strings.Cut(strings.TrimSpace(line), "\t")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(count))
		if err != nil {
			continue
		}

		c := Contributor{Name: strings.TrimSpace(who), Commits: n}
		if open := strings.LastIndex(who, "<"); open != -1 && strings.HasSuffix(who, ">") {
			c.Name = strings.TrimSpace(who[:open])
			c.Email = who[open+1 : len(who)-1]
		}
		contributors = append(contributors, c)
	}

	sort.SliceStable(contributors, func(i, j int) bool {
		return contributors[i].Commits > contributors[j].Commits
	})
	return contributors
}

// parseRemoteBranches parses `git branch -r`, dropping symbolic refs such as
// "origin/HEAD -> origin/main".
func parseRemoteBranches(output string) []string {
	var branches []string
	for _, line := range strings.Split(output, "\n") {
		b := strings.TrimSpace(line)
		if b == "" || strings.Contains(b, " -> ") {
			continue
		}
		branches = append(branches, b)
	}
	return branches
}
