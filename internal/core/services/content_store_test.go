package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shubhraaj/sitecms/internal/core/domain"
)

const cleanSnapshot = `{"about":{"intro":"i"},"projects":[],"testimonials":[],"contact":{"phone":"1","email":"e@x","mapUrls":[]}}`

func newTestStore(opts ...ContentStoreOption) (*ContentStore, *mockCache, *mockGateway, *counter) {
	cache := newMockCache()
	gw := newMockGateway()
	store := NewContentStore(cache, gw, opts...)
	c := &counter{}
	store.Subscribe(c.inc)
	return store, cache, gw, c
}

func seedProjects(t *testing.T, cache *mockCache, slugs ...string) {
	t.Helper()
	snap := domain.Snapshot{
		About:        domain.About{},
		Projects:     []domain.Project{},
		Testimonials: []domain.Testimonial{},
		Contact:      domain.Contact{MapURLs: []domain.MapLocation{}},
	}
	for _, s := range slugs {
		snap.Projects = append(snap.Projects, domain.Project{Slug: s, Title: s, Photos: []domain.Photo{}})
	}
	raw, err := domain.EncodeSnapshot(snap)
	require.NoError(t, err)
	cache.seed(string(raw))
}

func slugs(snap domain.Snapshot) []string {
	out := make([]string, 0, len(snap.Projects))
	for _, p := range snap.Projects {
		out = append(out, p.Slug)
	}
	return out
}

// ==================== Local snapshot ====================

func TestSnapshot_FirstRunSeedsDefaults(t *testing.T) {
	store, cache, _, notified := newTestStore()

	snap := store.Snapshot(context.Background())

	assert.Equal(t, domain.DefaultSnapshot(), snap)
	assert.Equal(t, []string{"luxury-living-suite", "modern-office-lounge"}, slugs(snap))

	keys := []string{}
	for _, m := range snap.Contact.MapURLs {
		keys = append(keys, m.Key)
	}
	assert.Equal(t, []string{"nashik", "ahilyanagar", "pune"}, keys)

	assert.Equal(t, 1, cache.writeCount(), "defaults persisted")
	assert.Equal(t, 1, notified.get())
}

func TestSnapshot_CleanCacheNotRewritten(t *testing.T) {
	store, cache, _, notified := newTestStore()
	cache.seed(cleanSnapshot)

	snap := store.Snapshot(context.Background())

	assert.Equal(t, "i", snap.About.Intro)
	assert.Zero(t, cache.writeCount())
	assert.Zero(t, notified.get())
}

func TestSnapshot_SelfHealsStaleShape(t *testing.T) {
	store, cache, _, notified := newTestStore()
	cache.seed(`{"about":{"intro":"kept"},"contact":{"phone":"9"}}`)

	snap := store.Snapshot(context.Background())

	assert.Equal(t, "kept", snap.About.Intro)
	assert.Equal(t, "9", snap.Contact.Phone)
	assert.Equal(t, domain.DefaultMapURLs(), snap.Contact.MapURLs)
	assert.Equal(t, domain.DefaultTestimonials(), snap.Testimonials)
	assert.Equal(t, 1, cache.writeCount())
	assert.Equal(t, 1, notified.get())

	// Second read finds the repaired shape
	store.Snapshot(context.Background())
	assert.Equal(t, 1, cache.writeCount())
	assert.Equal(t, 1, notified.get())
}

func TestSnapshot_UnreadableCacheDegradesToDefaults(t *testing.T) {
	store, cache, _, notified := newTestStore()
	cache.readErr = errors.New("quota exceeded")

	snap := store.Snapshot(context.Background())

	assert.Equal(t, domain.DefaultSnapshot(), snap)
	assert.Zero(t, notified.get())
}

func TestSnapshot_RoundTrip(t *testing.T) {
	store, cache, _, _ := newTestStore()

	want := domain.Snapshot{
		About: domain.About{Intro: "a", Mission: "b", Vision: "c", Philosophy: "d"},
		Projects: []domain.Project{
			{Slug: "x", Title: "X", Description: "desc", Photos: []domain.Photo{{URL: "u", ExternalID: "id"}}},
		},
		Testimonials: []domain.Testimonial{{Name: "N", Rating: 3, Text: "T"}},
		Contact: domain.Contact{
			Phone:   "p",
			Email:   "e",
			Socials: domain.Socials{Instagram: "ig"},
			MapURLs: []domain.MapLocation{{Key: "k", Name: "n", URL: "u"}},
		},
	}
	raw, err := domain.EncodeSnapshot(want)
	require.NoError(t, err)
	require.NoError(t, cache.WriteSnapshot(context.Background(), raw))

	assert.Equal(t, want, store.Snapshot(context.Background()))
}

// ==================== Pull ====================

func TestPull_StoresServerSnapshotVerbatim(t *testing.T) {
	store, cache, gw, notified := newTestStore()
	gw.snapshot = []byte(`{"about":{"intro":"server"},"projects":[],"testimonials":[],"contact":{"mapUrls":[]},"hero":{"x":1}}`)

	snap := store.Pull(context.Background())

	assert.Equal(t, "server", snap.About.Intro)
	assert.Equal(t, gw.snapshot, cache.raw())
	assert.Equal(t, 1, notified.get())
}

func TestPull_OfflineFallsBackToLocal(t *testing.T) {
	store, cache, gw, notified := newTestStore()
	cache.seed(cleanSnapshot)
	gw.fetchErr = errOffline

	snap := store.Pull(context.Background())

	assert.Equal(t, "i", snap.About.Intro)
	assert.Equal(t, []byte(cleanSnapshot), cache.raw())
	assert.Zero(t, notified.get())
}

func TestPull_HTTPErrorSeedsDefaultsWhenNoCache(t *testing.T) {
	store, _, gw, notified := newTestStore()
	gw.fetchErr = domain.NewHTTPError(500, "")

	snap, err := store.TryPull(context.Background())

	assert.Error(t, err)
	assert.Equal(t, domain.DefaultSnapshot(), snap)
	assert.Equal(t, 1, notified.get(), "seed write notifies")
}

func TestPull_NonObjectBodyIsAFailure(t *testing.T) {
	store, cache, gw, _ := newTestStore()
	cache.seed(cleanSnapshot)
	gw.snapshot = []byte(`<html>oops</html>`)

	snap, err := store.TryPull(context.Background())

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "i", snap.About.Intro)
	assert.Equal(t, []byte(cleanSnapshot), cache.raw())
}

func TestPull_CacheWriteFailureStillReturnsServerData(t *testing.T) {
	store, cache, gw, notified := newTestStore()
	gw.snapshot = []byte(cleanSnapshot)
	cache.writeErr = errors.New("disk full")

	snap, err := store.TryPull(context.Background())

	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Equal(t, "i", snap.About.Intro)
	assert.Zero(t, notified.get())
}

func TestPull_MarksSectionsClean(t *testing.T) {
	store, cache, gw, _ := newTestStore()
	seedProjects(t, cache, "a")
	gw.saveErr = errOffline
	require.NoError(t, store.DeleteProject(context.Background(), "a"))
	assert.Equal(t, domain.SectionPendingLocal, store.SyncState(domain.SectionProjects).State)

	gw.snapshot = []byte(cleanSnapshot)
	store.Pull(context.Background())

	for _, st := range store.SyncStates() {
		assert.Equal(t, domain.SectionClean, st.State, st.Section)
	}
}

// ==================== Projects ====================

func TestAddProject_Prepends(t *testing.T) {
	store, cache, gw, notified := newTestStore()
	seedProjects(t, cache, "b", "a")

	err := store.AddProject(context.Background(), domain.Project{Title: "C"})
	require.NoError(t, err)

	assert.Equal(t, []string{"c", "b", "a"}, slugs(store.Snapshot(context.Background())))
	assert.Equal(t, []string{"c", "b", "a"}, slugs(domain.Snapshot{Projects: gw.lastProjects}))
	assert.Equal(t, 1, notified.get())
	assert.Equal(t, domain.SectionClean, store.SyncState(domain.SectionProjects).State)
}

func TestAddProject_DerivesAndNormalisesSlug(t *testing.T) {
	store, cache, _, _ := newTestStore()
	seedProjects(t, cache)

	require.NoError(t, store.AddProject(context.Background(), domain.Project{Title: "Luxury Living Suite!!"}))
	require.NoError(t, store.AddProject(context.Background(), domain.Project{Title: "Other", Slug: "My Custom  Slug"}))

	assert.Equal(t, []string{"my-custom-slug", "luxury-living-suite"}, slugs(store.Snapshot(context.Background())))
}

func TestAddProject_Validation(t *testing.T) {
	store, cache, gw, notified := newTestStore()
	seedProjects(t, cache, "taken")

	err := store.AddProject(context.Background(), domain.Project{Title: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = store.AddProject(context.Background(), domain.Project{Title: "Taken"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	assert.Zero(t, gw.count("projects"), "no network call for invalid input")
	assert.Zero(t, notified.get())
}

func TestAddProject_StripsMarkup(t *testing.T) {
	store, cache, gw, _ := newTestStore()
	seedProjects(t, cache)

	err := store.AddProject(context.Background(), domain.Project{
		Title:       "<b>Bold</b> & Bright",
		Description: `<script>alert(1)</script>Sunlit <i>loft</i>`,
	})
	require.NoError(t, err)

	require.Len(t, gw.lastProjects, 1)
	assert.Equal(t, "Bold & Bright", gw.lastProjects[0].Title)
	assert.Equal(t, "Sunlit loft", gw.lastProjects[0].Description)
	assert.Equal(t, "bold-bright", gw.lastProjects[0].Slug)
}

func TestAddProject_StripsEncodedMarkup(t *testing.T) {
	store, cache, gw, _ := newTestStore()
	seedProjects(t, cache)

	err := store.AddProject(context.Background(), domain.Project{
		Title:       "&lt;b&gt;Loft&lt;/b&gt;",
		Description: "&lt;script&gt;alert(1)&lt;/script&gt;Quiet &amp;lt;i&amp;gt;corner",
	})
	require.NoError(t, err)

	require.Len(t, gw.lastProjects, 1)
	assert.Equal(t, "Loft", gw.lastProjects[0].Title)
	assert.Equal(t, "Quiet corner", gw.lastProjects[0].Description)
	assert.NotContains(t, string(cache.raw()), "<script>")
}

func TestAddProject_ServerCanonicalWins(t *testing.T) {
	store, cache, gw, _ := newTestStore()
	seedProjects(t, cache, "a")
	gw.projectsReply = []domain.Project{{Slug: "server-c", Title: "C"}, {Slug: "a", Title: "a"}}

	require.NoError(t, store.AddProject(context.Background(), domain.Project{Title: "C"}))

	assert.Equal(t, []string{"server-c", "a"}, slugs(store.Snapshot(context.Background())))
}

func TestUpdateProject_MergesFields(t *testing.T) {
	store, cache, _, notified := newTestStore()
	seedProjects(t, cache, "a", "b")

	desc := "updated"
	err := store.UpdateProject(context.Background(), "b", domain.ProjectPatch{Description: &desc})
	require.NoError(t, err)

	snap := store.Snapshot(context.Background())
	assert.Equal(t, "updated", snap.Projects[1].Description)
	assert.Equal(t, "b", snap.Projects[1].Title)
	assert.Equal(t, 1, notified.get())
}

func TestUpdateProject_UnknownSlugLeavesListUnchanged(t *testing.T) {
	store, cache, gw, _ := newTestStore()
	seedProjects(t, cache, "a", "b")
	before := store.Snapshot(context.Background()).Projects

	title := "New"
	err := store.UpdateProject(context.Background(), "missing", domain.ProjectPatch{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, before, store.Snapshot(context.Background()).Projects)
	assert.Equal(t, 1, gw.count("projects"), "gateway still called")
}

func TestUpdateProject_EmptyPhotosStayArrays(t *testing.T) {
	store, cache, gw, _ := newTestStore()
	seedProjects(t, cache, "a")

	title := "New"
	require.NoError(t, store.UpdateProject(context.Background(), "missing", domain.ProjectPatch{Title: &title}))

	raw := string(cache.raw())
	assert.Contains(t, raw, `"photos":[]`)
	assert.NotContains(t, raw, `"photos":null`)

	require.Len(t, gw.lastProjects, 1)
	assert.NotNil(t, gw.lastProjects[0].Photos, "sent body keeps an empty list")
}

func TestUpdateProject_SlugCollision(t *testing.T) {
	store, cache, gw, _ := newTestStore()
	seedProjects(t, cache, "a", "b")

	slug := "a"
	err := store.UpdateProject(context.Background(), "b", domain.ProjectPatch{Slug: &slug})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	assert.Zero(t, gw.count("projects"))
}

func TestDeleteProject_PreservesOrder(t *testing.T) {
	store, cache, _, _ := newTestStore()
	seedProjects(t, cache, "a", "b", "c")

	require.NoError(t, store.DeleteProject(context.Background(), "b"))

	assert.Equal(t, []string{"a", "c"}, slugs(store.Snapshot(context.Background())))
}

// ==================== Fallback policy ====================

func TestMutations_GatewayFailureAppliesLocallyAndNotifiesOnce(t *testing.T) {
	ctx := context.Background()
	rating := domain.Testimonial{Name: "N", Rating: 4, Text: "T"}

	tests := []struct {
		name    string
		section domain.Section
		run     func(s *ContentStore) error
		check   func(t *testing.T, snap domain.Snapshot)
	}{
		{
			name:    "delete project",
			section: domain.SectionProjects,
			run:     func(s *ContentStore) error { return s.DeleteProject(ctx, "a") },
			check: func(t *testing.T, snap domain.Snapshot) {
				assert.Equal(t, []string{"b"}, slugs(snap))
			},
		},
		{
			name:    "add project",
			section: domain.SectionProjects,
			run:     func(s *ContentStore) error { return s.AddProject(ctx, domain.Project{Title: "New"}) },
			check: func(t *testing.T, snap domain.Snapshot) {
				assert.Equal(t, []string{"new", "a", "b"}, slugs(snap))
			},
		},
		{
			name:    "set testimonials",
			section: domain.SectionTestimonials,
			run:     func(s *ContentStore) error { return s.SetTestimonials(ctx, []domain.Testimonial{rating}) },
			check: func(t *testing.T, snap domain.Snapshot) {
				assert.Equal(t, []domain.Testimonial{rating}, snap.Testimonials)
			},
		},
		{
			name:    "set about",
			section: domain.SectionAbout,
			run:     func(s *ContentStore) error { return s.SetAbout(ctx, domain.About{Intro: "offline"}) },
			check: func(t *testing.T, snap domain.Snapshot) {
				assert.Equal(t, "offline", snap.About.Intro)
			},
		},
		{
			name:    "set contact",
			section: domain.SectionContact,
			run: func(s *ContentStore) error {
				return s.SetContact(ctx, domain.Contact{Phone: "1", Email: "e", MapURLs: []domain.MapLocation{}})
			},
			check: func(t *testing.T, snap domain.Snapshot) {
				assert.Equal(t, "1", snap.Contact.Phone)
			},
		},
		{
			name:    "add map location",
			section: domain.SectionContact,
			run:     func(s *ContentStore) error { return s.AddMapLocation(ctx) },
			check: func(t *testing.T, snap domain.Snapshot) {
				assert.Equal(t, []domain.MapLocation{{}}, snap.Contact.MapURLs)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, cache, gw, notified := newTestStore()
			seedProjects(t, cache, "a", "b")
			gw.saveErr = errOffline

			require.NoError(t, tt.run(store))

			tt.check(t, store.Snapshot(ctx))
			assert.Equal(t, 1, notified.get())

			st := store.SyncState(tt.section)
			assert.Equal(t, domain.SectionPendingLocal, st.State)
			assert.Contains(t, st.LastError, "connection refused")
		})
	}
}

func TestMutations_FallbackWriteFailurePropagates(t *testing.T) {
	store, cache, gw, notified := newTestStore()
	seedProjects(t, cache, "a")
	gw.saveErr = errOffline
	cache.writeErr = errors.New("disk full")

	err := store.DeleteProject(context.Background(), "a")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOffline)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Equal(t, domain.SectionError, store.SyncState(domain.SectionProjects).State)
	assert.Zero(t, notified.get())
}

func TestMutations_StrictPolicyFailsLoud(t *testing.T) {
	store, cache, gw, notified := newTestStore(WithSyncPolicy(domain.SyncPolicyStrict))
	seedProjects(t, cache, "a")
	gw.saveErr = domain.NewHTTPError(401, "Unauthorized")
	before := cache.raw()

	err := store.DeleteProject(context.Background(), "a")

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, before, cache.raw())
	assert.Zero(t, notified.get())
	assert.Equal(t, domain.SectionError, store.SyncState(domain.SectionProjects).State)
	assert.Equal(t, domain.SyncPolicyStrict, store.Policy())
}

func TestMutations_SpliceKeepsOtherSectionsBytes(t *testing.T) {
	store, cache, _, _ := newTestStore()
	cache.seed(`{"about":{"intro":"x","custom":1},"projects":[],"testimonials":[],"contact":{"mapUrls":[]},"hero":"keep"}`)

	require.NoError(t, store.SetTestimonials(context.Background(), []domain.Testimonial{{Name: "a", Rating: 5, Text: "b"}}))

	var members map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(cache.raw(), &members))
	assert.Equal(t, `{"intro":"x","custom":1}`, string(members["about"]))
	assert.Equal(t, `"keep"`, string(members["hero"]))
}

func TestMutations_StaleCacheHealsWithSingleNotification(t *testing.T) {
	store, cache, _, notified := newTestStore()
	cache.seed(`{"about":{"intro":"old"}}`)

	require.NoError(t, store.SetAbout(context.Background(), domain.About{Intro: "new"}))

	snap := store.Snapshot(context.Background())
	assert.Equal(t, "new", snap.About.Intro)
	assert.Equal(t, domain.DefaultProjects(), snap.Projects)
	assert.Equal(t, 1, notified.get())
}

// ==================== Testimonials ====================

func TestSetTestimonials_RejectsOutOfRangeRating(t *testing.T) {
	store, cache, gw, _ := newTestStore()
	cache.seed(cleanSnapshot)

	for _, r := range []int{0, 6, -1} {
		err := store.SetTestimonials(context.Background(), []domain.Testimonial{{Name: "n", Text: "t", Rating: r}})
		assert.ErrorIs(t, err, domain.ErrInvalidRating)
	}
	assert.Zero(t, gw.count("testimonials"))
}

func TestSetTestimonials_RequiresNameAndText(t *testing.T) {
	store, cache, _, _ := newTestStore()
	cache.seed(cleanSnapshot)

	err := store.SetTestimonials(context.Background(), []domain.Testimonial{{Name: "", Text: "t", Rating: 5}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddAndRemoveTestimonial(t *testing.T) {
	store, cache, _, notified := newTestStore()
	cache.seed(cleanSnapshot)
	ctx := context.Background()

	require.NoError(t, store.AddTestimonial(ctx, domain.Testimonial{Name: "A", Rating: 5, Text: "one"}))
	require.NoError(t, store.AddTestimonial(ctx, domain.Testimonial{Name: "B", Rating: 4, Text: "two"}))
	require.NoError(t, store.AddTestimonial(ctx, domain.Testimonial{Name: "C", Rating: 3, Text: "three"}))

	require.NoError(t, store.RemoveTestimonial(ctx, 1))

	got := store.Snapshot(ctx).Testimonials
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Name)
	assert.Equal(t, "C", got[1].Name)
	assert.Equal(t, 4, notified.get())

	assert.ErrorIs(t, store.RemoveTestimonial(ctx, 5), domain.ErrNotFound)
	assert.ErrorIs(t, store.RemoveTestimonial(ctx, -1), domain.ErrNotFound)
	assert.Equal(t, 4, notified.get())
}

// ==================== About / Contact / Maps ====================

func TestSetAbout_ServerCanonical(t *testing.T) {
	store, cache, gw, _ := newTestStore()
	cache.seed(cleanSnapshot)
	gw.aboutReply = &domain.About{Intro: "canonical"}

	require.NoError(t, store.SetAbout(context.Background(), domain.About{Intro: "sent"}))

	assert.Equal(t, "sent", gw.lastAbout.Intro)
	assert.Equal(t, "canonical", store.Snapshot(context.Background()).About.Intro)
}

func TestSetContact_RequiresPhoneAndEmail(t *testing.T) {
	store, cache, gw, _ := newTestStore()
	cache.seed(cleanSnapshot)

	err := store.SetContact(context.Background(), domain.Contact{Phone: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, gw.count("contact"))
}

func TestSetMapURLs_KeepsContactAndDisambiguatesKeys(t *testing.T) {
	store, cache, gw, _ := newTestStore()
	cache.seed(cleanSnapshot)

	err := store.SetMapURLs(context.Background(), []domain.MapLocation{
		{Key: "pune", Name: "Pune"},
		{Key: "pune", Name: "Pune East"},
		{Key: "", Name: "Draft"},
		{Key: "", Name: "Draft 2"},
		{Key: "pune", Name: "Pune West"},
	})
	require.NoError(t, err)

	contact := store.Snapshot(context.Background()).Contact
	assert.Equal(t, "1", contact.Phone, "rest of contact kept")
	keys := []string{}
	for _, m := range contact.MapURLs {
		keys = append(keys, m.Key)
	}
	assert.Equal(t, []string{"pune", "pune-2", "", "", "pune-3"}, keys)
	assert.Equal(t, contact.MapURLs, gw.lastContact.MapURLs)
}

func TestMapLocations_AddAppendsAndRemoveByIndex(t *testing.T) {
	store, _, _, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.AddMapLocation(ctx))
	maps := store.Snapshot(ctx).Contact.MapURLs
	require.Len(t, maps, 4)
	assert.Equal(t, domain.MapLocation{}, maps[3])

	require.NoError(t, store.RemoveMapLocation(ctx, 0))
	maps = store.Snapshot(ctx).Contact.MapURLs
	require.Len(t, maps, 3)
	assert.Equal(t, "ahilyanagar", maps[0].Key)

	assert.ErrorIs(t, store.RemoveMapLocation(ctx, 3), domain.ErrNotFound)
}

// ==================== Cache lifecycle ====================

func TestClearCache_ReseedsOnNextRead(t *testing.T) {
	store, cache, _, notified := newTestStore()
	cache.seed(cleanSnapshot)

	require.NoError(t, store.ClearCache(context.Background()))
	assert.Equal(t, 1, notified.get())
	assert.Equal(t, 1, cache.clearCalls)

	assert.Equal(t, domain.DefaultSnapshot(), store.Snapshot(context.Background()))
}

func TestSyncStates_DefaultClean(t *testing.T) {
	store, _, _, _ := newTestStore()

	states := store.SyncStates()
	require.Len(t, states, 4)
	for i, section := range domain.AllSections() {
		assert.Equal(t, section, states[i].Section)
		assert.Equal(t, domain.SectionClean, states[i].State)
	}
}

// ==================== Concurrency ====================

func TestMutations_ConcurrentAddsDoNotClobber(t *testing.T) {
	store, cache, gw, notified := newTestStore()
	cache.seed(cleanSnapshot)
	gw.saveErr = errOffline
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := store.AddTestimonial(ctx, domain.Testimonial{Name: "n", Rating: 1 + i%5, Text: "t"})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Snapshot(ctx).Testimonials, n)
	assert.Equal(t, n, notified.get())
}

func TestSubscribe_ListenerMayReadStore(t *testing.T) {
	store, cache, _, _ := newTestStore()
	cache.seed(cleanSnapshot)

	var seen string
	unsubscribe := store.Subscribe(func() {
		seen = store.Snapshot(context.Background()).About.Intro
	})
	defer unsubscribe()

	require.NoError(t, store.SetAbout(context.Background(), domain.About{Intro: "fresh"}))
	assert.Equal(t, "fresh", seen)
}

// ==================== Import / Reload ====================

func TestImportSnapshot(t *testing.T) {
	store, cache, gw, notified := newTestStore()

	err := store.ImportSnapshot(context.Background(), []byte(`{"projects":[{"slug":"x","title":"X"}]}`))

	require.NoError(t, err)
	assert.Equal(t, 1, notified.get())
	assert.Zero(t, gw.count("projects"), "import never contacts the server")

	snap := domain.Migrate(cache.raw())
	assert.Equal(t, []string{"x"}, slugs(snap))
	assert.NotNil(t, snap.Contact.MapURLs, "missing sections are filled in")
	for _, st := range store.SyncStates() {
		assert.Equal(t, domain.SectionPendingLocal, st.State, st.Section.String())
	}
}

func TestImportSnapshot_RejectsNonObject(t *testing.T) {
	store, cache, _, notified := newTestStore()

	err := store.ImportSnapshot(context.Background(), []byte(`[1,2]`))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, cache.writeCount())
	assert.Zero(t, notified.get())
}

func TestReload(t *testing.T) {
	store, cache, _, notified := newTestStore()
	ctx := context.Background()
	cache.seed(cleanSnapshot)

	changed, err := store.Reload(ctx)
	require.NoError(t, err)
	assert.False(t, changed, "first reload only records the contents")

	changed, err = store.Reload(ctx)
	require.NoError(t, err)
	assert.False(t, changed)

	cache.seed(`{"about":{"intro":"edited elsewhere"}}`)
	changed, err = store.Reload(ctx)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 1, notified.get())
}

func TestReload_IgnoresOwnWrites(t *testing.T) {
	store, _, _, notified := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.AddTestimonial(ctx, domain.Testimonial{Name: "A", Rating: 5, Text: "Great"}))
	require.NoError(t, store.ClearCache(ctx))
	before := notified.get()

	changed, err := store.Reload(ctx)

	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, before, notified.get())
}

func TestReload_ConcurrentMutationNotReportedAsExternal(t *testing.T) {
	store, cache, _, notified := newTestStore()
	ctx := context.Background()
	seedProjects(t, cache, "a")

	_, err := store.Reload(ctx)
	require.NoError(t, err)

	done := make(chan error, 1)
	cache.mu.Lock()
	cache.onRead = func() {
		go func() {
			done <- store.AddProject(ctx, domain.Project{Title: "B"})
		}()
		time.Sleep(20 * time.Millisecond)
	}
	cache.mu.Unlock()

	changed, err := store.Reload(ctx)
	require.NoError(t, err)
	assert.False(t, changed)
	require.NoError(t, <-done)

	changed, err = store.Reload(ctx)
	require.NoError(t, err)
	assert.False(t, changed, "the mutation's own write is not an external change")
	assert.Equal(t, 1, notified.get(), "only the mutation notified")
}

func TestReload_UnreadableCache(t *testing.T) {
	store, cache, _, _ := newTestStore()
	cache.readErr = errors.New("disk gone")

	_, err := store.Reload(context.Background())

	assert.ErrorIs(t, err, domain.ErrStorage)
}
