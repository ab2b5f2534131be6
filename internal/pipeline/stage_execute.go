package pipeline

import "context"

func (p *Pipeline) stageExecute(ctx context.Context, rs *runState) error {
	return p.cargo.Test(ctx, rs.dir, rs.cfg.Quiet)
}
