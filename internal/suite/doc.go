// Package suite は逐次生成と並列生成のベンチマークを統合実行する。
//
// EngineはRunnerで各戦略をNumTests回ずつ計測し、平均時間の昇順で
// 安定ソートして勝者を決定する。
//
// # 機能
//
// - 設定値（配列サイズ、トライアル数、ワーカー数、完了通知形式）の保持
// - 定義済みプリセット
// - 順位表と勝者のレポート生成
//
// # プリセット
//
// - default: 5000万要素、10トライアル、4ワーカー
// - quick: 1000要素、3トライアル、4ワーカー
// - light: 100万要素、5トライアル、4ワーカー
// - signal: defaultと同じ規模で、ワーカーは完了のみ通知
//
// # 使用例
//
//	engine := suite.New(suite.QuickConfig(), os.Stdout)
//	report, err := engine.Run(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report.Winner().Name)
package suite
