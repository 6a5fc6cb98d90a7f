// Package schedule re-indexes the declaration catalog on a cron schedule.
//
//	s := schedule.NewScheduler(indexer, "src", cfg.Catalog.Schedule).WithLogger(logger)
//	if err := s.Start(ctx); err != nil {
//	    return err
//	}
//	defer s.Stop()
package schedule
