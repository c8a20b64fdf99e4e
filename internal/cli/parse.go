package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tutorly/roster/internal/application"
	"github.com/tutorly/roster/internal/roster"
)

const (
	usageAdd = "add: Adds a person to the roster.\n" +
		"Parameters: r/ROLE n/NAME ph/PHONE e/EMAIL a/ADDRESS s/SUBJECT l/LEVEL p/PRICE [t/TAG]...\n" +
		"Example: add r/tutor n/Aaron Tan ph/91234567 e/aarontan@example.com a/311, Clementi Ave 2, #02-25 s/Mathematics l/1-3 p/10-20"
	usageEdit = "edit: Edits the person at INDEX in the displayed list.\n" +
		"Parameters: INDEX [n/NAME] [ph/PHONE] [e/EMAIL] [a/ADDRESS] [s/SUBJECT] [l/LEVEL] [p/PRICE] [t/TAG]...\n" +
		"Example: edit 1 ph/91234567 e/johndoe@example.com"
	usageDelete = "delete: Deletes the person at INDEX in the displayed list.\n" +
		"Example: delete 1"
	usageFind = "find: Finds tutors or students matching every given criterion.\n" +
		"Parameters: ROLE [n/NAME]... [s/SUBJECT]... [l/LEVEL]... [p/PRICE]...\n" +
		"Example: find tutor s/Mathematics l/2-4"
	usageMatch = "match: Matches a student with a tutor by their persistent IDs (in any order).\n" +
		"Parameters: ID1 ID2 (both positive integers)\n" +
		"Example: match 3 12"
	usageUnmatch = "unmatch: Unmatches a person and their paired partner, using the persistent ID of either person.\n" +
		"Parameters: PERSON_ID (positive integer)\n" +
		"Example: unmatch 5"
	usageSessionAdd = "sessionadd: Adds a session to the specified person (must be matched).\n" +
		"Format: sessionadd INDEX d/DAY t/TIME dur/DURATION s/SUBJECT p/PRICE\n" +
		"Example: sessionadd 1 d/Monday t/16:00 dur/02:00 s/Mathematics p/40"
	usageSessionDelete = "sessiondelete: Deletes the session of the specified person (must be matched).\n" +
		"Format: sessiondelete INDEX"
	usageRecommend = "recommend: Recommends persons that match the requirements of the person at INDEX.\n" +
		"If no criteria is specified, subject, level and price are all used.\n" +
		"Parameters: INDEX [s/] [l/] [p/]\n" +
		"Example: recommend 1 p/"
	usageSort = "sort: Sorts tutors or students by the specified field(s).\n" +
		"Parameters: ROLE FIELD [FIELD]...\n" +
		"ROLE: tutors, students or reset\n" +
		"FIELD: p/ (price) or l/ (level)\n" +
		"Example: sort tutors p/ l/"
	usageStats = "stats: Displays statistics about the tutors and students in the roster."
	usageList  = "list: Lists every person in the roster."
	usageHelp  = "help: Shows the usage of every command."
	usageExit  = "exit: Exits the program."
)

// parseIndex parses a 1-based position in the displayed list.
func parseIndex(value string) (int, error) {
	index, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || index <= 0 {
		return 0, fmt.Errorf("%w: index must be a positive integer", ErrInvalidFormat)
	}
	return index, nil
}

func parseAdd(input string) (application.AddPersonParams, error) {
	args := tokenize(input, prefixRole, prefixName, prefixPhone, prefixEmail, prefixAddress,
		prefixSubject, prefixLevel, prefixPrice, prefixTag)

	if args.preamble != "" || len(args.missing(prefixRole, prefixName, prefixPhone, prefixEmail,
		prefixAddress, prefixSubject, prefixLevel, prefixPrice)) > 0 {
		return application.AddPersonParams{}, usageError(usageAdd)
	}
	if err := args.singleValued(prefixRole, prefixName, prefixPhone, prefixEmail, prefixAddress,
		prefixSubject, prefixLevel, prefixPrice); err != nil {
		return application.AddPersonParams{}, err
	}

	roleValue, _ := args.value(prefixRole)
	role, err := roster.ParseRole(roleValue)
	if err != nil {
		return application.AddPersonParams{}, err
	}
	subjectValue, _ := args.value(prefixSubject)
	subject, err := roster.ParseSubject(subjectValue)
	if err != nil {
		return application.AddPersonParams{}, err
	}
	levelValue, _ := args.value(prefixLevel)
	level, err := roster.ParseLevel(levelValue)
	if err != nil {
		return application.AddPersonParams{}, err
	}
	priceValue, _ := args.value(prefixPrice)
	price, err := roster.ParsePrice(priceValue)
	if err != nil {
		return application.AddPersonParams{}, err
	}

	name, _ := args.value(prefixName)
	phone, _ := args.value(prefixPhone)
	email, _ := args.value(prefixEmail)
	address, _ := args.value(prefixAddress)
	return application.AddPersonParams{Input: roster.PersonInput{
		Role: role,
		Profile: roster.Profile{
			Name:    name,
			Phone:   phone,
			Email:   email,
			Address: address,
			Tags:    tags(args.all(prefixTag)),
		},
		Subject: subject,
		Level:   level,
		Price:   price,
	}}, nil
}

func parseEdit(input string) (application.EditPersonParams, error) {
	args := tokenize(input, prefixName, prefixPhone, prefixEmail, prefixAddress,
		prefixSubject, prefixLevel, prefixPrice, prefixTag)

	index, err := parseIndex(args.preamble)
	if err != nil {
		return application.EditPersonParams{}, usageError(usageEdit)
	}
	if err := args.singleValued(prefixName, prefixPhone, prefixEmail, prefixAddress,
		prefixSubject, prefixLevel, prefixPrice); err != nil {
		return application.EditPersonParams{}, err
	}

	var changes application.PersonChanges
	if value, ok := args.value(prefixName); ok {
		changes.Name = &value
	}
	if value, ok := args.value(prefixPhone); ok {
		changes.Phone = &value
	}
	if value, ok := args.value(prefixEmail); ok {
		changes.Email = &value
	}
	if value, ok := args.value(prefixAddress); ok {
		changes.Address = &value
	}
	if value, ok := args.value(prefixSubject); ok {
		subject, err := roster.ParseSubject(value)
		if err != nil {
			return application.EditPersonParams{}, err
		}
		changes.Subject = &subject
	}
	if value, ok := args.value(prefixLevel); ok {
		level, err := roster.ParseLevel(value)
		if err != nil {
			return application.EditPersonParams{}, err
		}
		changes.Level = &level
	}
	if value, ok := args.value(prefixPrice); ok {
		price, err := roster.ParsePrice(value)
		if err != nil {
			return application.EditPersonParams{}, err
		}
		changes.Price = &price
	}
	if args.has(prefixTag) {
		// A lone empty t/ clears every tag.
		replaced := tags(args.all(prefixTag))
		if replaced == nil {
			replaced = []string{}
		}
		changes.Tags = &replaced
	}

	return application.EditPersonParams{Index: index, Changes: changes}, nil
}

func parseFind(input string) (application.FindParams, error) {
	args := tokenize(input, prefixName, prefixSubject, prefixLevel, prefixPrice)
	if args.preamble == "" {
		return application.FindParams{}, usageError(usageFind)
	}

	// An unknown role is left for the service to report.
	params := application.FindParams{Role: roster.Role(strings.TrimSuffix(strings.ToLower(args.preamble), "s"))}
	for _, value := range args.all(prefixName) {
		params.Names = append(params.Names, strings.Fields(value)...)
	}
	for _, value := range args.all(prefixSubject) {
		subject, err := roster.ParseSubject(value)
		if err != nil {
			return application.FindParams{}, err
		}
		params.Subjects = append(params.Subjects, subject)
	}
	for _, value := range args.all(prefixLevel) {
		level, err := roster.ParseLevel(value)
		if err != nil {
			return application.FindParams{}, err
		}
		params.Levels = append(params.Levels, level)
	}
	for _, value := range args.all(prefixPrice) {
		price, err := roster.ParsePrice(value)
		if err != nil {
			return application.FindParams{}, err
		}
		params.Prices = append(params.Prices, price)
	}
	return params, nil
}

func parseMatch(input string) (application.MatchParams, error) {
	parts := strings.Fields(input)
	if len(parts) != 2 {
		return application.MatchParams{}, usageError(usageMatch)
	}
	first, err1 := strconv.Atoi(parts[0])
	second, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || first <= 0 || second <= 0 {
		return application.MatchParams{}, fmt.Errorf("%w: IDs must be positive integers. Example: match 12 34", ErrInvalidFormat)
	}
	return application.MatchParams{FirstID: first, SecondID: second}, nil
}

func parseUnmatch(input string) (int, error) {
	parts := strings.Fields(input)
	if len(parts) != 1 {
		return 0, usageError(usageUnmatch)
	}
	id, err := strconv.Atoi(parts[0])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: ID must be a positive integer. Example: unmatch 5", ErrInvalidFormat)
	}
	return id, nil
}

func parseSessionAdd(input string) (application.AddSessionParams, error) {
	args := tokenize(input, prefixDay, prefixTime, prefixDuration, prefixSubject, prefixPrice)

	index, err := parseIndex(args.preamble)
	if err != nil || len(args.missing(prefixDay, prefixTime, prefixDuration, prefixSubject, prefixPrice)) > 0 {
		return application.AddSessionParams{}, usageError(usageSessionAdd)
	}
	if err := args.singleValued(prefixDay, prefixTime, prefixDuration, prefixSubject, prefixPrice); err != nil {
		return application.AddSessionParams{}, err
	}

	dayValue, _ := args.value(prefixDay)
	day, err := roster.ParseWeekday(dayValue)
	if err != nil {
		return application.AddSessionParams{}, err
	}
	timeValue, _ := args.value(prefixTime)
	start, err := roster.ParseClock(timeValue)
	if err != nil {
		return application.AddSessionParams{}, err
	}
	durationValue, _ := args.value(prefixDuration)
	duration, err := roster.ParseDuration(durationValue)
	if err != nil {
		return application.AddSessionParams{}, err
	}
	subjectValue, _ := args.value(prefixSubject)
	subject, err := roster.ParseSubject(subjectValue)
	if err != nil {
		return application.AddSessionParams{}, err
	}
	priceValue, _ := args.value(prefixPrice)
	price, err := roster.ParsePrice(priceValue)
	if err != nil {
		return application.AddSessionParams{}, err
	}
	if !price.IsSingle() {
		return application.AddSessionParams{}, roster.ErrPriceNotSingle
	}

	return application.AddSessionParams{
		Index:    index,
		Day:      day,
		Start:    start,
		Duration: duration,
		Subject:  subject,
		Price:    price,
	}, nil
}

func parseRecommend(input string) (application.RecommendParams, error) {
	args := tokenize(input, prefixSubject, prefixLevel, prefixPrice)
	if args.preamble == "" {
		return application.RecommendParams{}, usageError(usageRecommend)
	}
	index, err := parseIndex(args.preamble)
	if err != nil {
		return application.RecommendParams{}, err
	}

	flags := map[string]string{prefixSubject: "Subject", prefixLevel: "Level", prefixPrice: "Price"}
	for _, prefix := range args.order {
		for _, value := range args.values[prefix] {
			if value != "" {
				return application.RecommendParams{}, fmt.Errorf("%w: %s specifier should not have a value", ErrInvalidFormat, flags[prefix])
			}
		}
	}

	return application.RecommendParams{
		Index:      index,
		UseSubject: args.has(prefixSubject),
		UseLevel:   args.has(prefixLevel),
		UsePrice:   args.has(prefixPrice),
	}, nil
}

func parseSort(input string) (application.SortParams, error) {
	args := tokenize(input, prefixPrice, prefixLevel)

	target := application.SortTarget(strings.ToLower(args.preamble))
	switch target {
	case application.SortReset:
		if len(args.order) > 0 {
			return application.SortParams{}, usageError(usageSort)
		}
		return application.SortParams{Target: target}, nil
	case application.SortTutors, application.SortStudents:
	default:
		return application.SortParams{}, usageError(usageSort)
	}

	if err := args.singleValued(prefixPrice, prefixLevel); err != nil {
		return application.SortParams{}, err
	}
	keys := make([]roster.SortKey, 0, len(args.order))
	for _, prefix := range args.order {
		if value, _ := args.value(prefix); value != "" {
			return application.SortParams{}, usageError(usageSort)
		}
		key, err := roster.ParseSortKey(prefix)
		if err != nil {
			return application.SortParams{}, err
		}
		keys = append(keys, key)
	}
	return application.SortParams{Target: target, Keys: keys}, nil
}

// tags drops empty values so that a bare t/ means "no tags".
func tags(values []string) []string {
	var out []string
	for _, value := range values {
		if value != "" {
			out = append(out, value)
		}
	}
	return out
}
