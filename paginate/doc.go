// Package paginate lays out a pre-rendered document body into fixed-height
// plain text pages.
//
// Rendering happens in two steps. A renderer writes the body into a Recorder,
// which remembers the size of every emitted block (break hints), the offsets
// at which headings and index references start (marks), and where the table
// of contents and the index belong (markers). The frozen Source is then handed
// to a Paginator which:
//
//   - measures the deferred sections (TOC, index) to plan their reservations
//   - lays the body out into pages, reserving blank placeholders for the
//     deferred sections and recording the page of every marked offset
//   - stamps those pages onto the document model through a Stamper
//   - renders the deferred sections again, now with real page numbers, and
//     splices them into the placeholders
//
// If a deferred section comes out longer than its reservation the paginator
// plans again with the measured size instead of truncating it.
//
// Example:
//
//	rec := paginate.NewRecorder()
//	rec.Write("1.  Introduction", "")
//	rec.Write("   Some text.", "")
//
//	p := paginate.New(paginate.WithCapacity(55))
//	res, err := p.Paginate(paginate.Job{
//		Source:  rec.Source(),
//		Running: paginate.NewRunning(meta, nil),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	_, _ = res.WriteTo(os.Stdout)
package paginate
