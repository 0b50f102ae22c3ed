package output

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// 单次InsertMany的文档数上限
const mongoBatchSize = 256

// MongoSink 逐步仿真数据的MongoDB输出
// 功能：将每个模拟步的密度与速度作为文档批量写入MongoDB集合
// 说明：文档按批缓存，满一批或Close时统一插入
type MongoSink struct {
	client *mongo.Client
	coll   *mongo.Collection
	docs   []interface{} // 待插入的文档缓存
}

// NewMongoSink 创建MongoDB输出
// 功能：连接MongoDB并定位输出集合
// 参数：uri-连接字符串，db-数据库名，col-集合名
// 返回：初始化完成的MongoDB输出实例
func NewMongoSink(uri, db, col string) (*MongoSink, error) {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("output: failed to connect to mongodb: %w", err)
	}
	log.Infof("writing output to %s.%s", db, col)
	return &MongoSink{
		client: client,
		coll:   client.Database(db).Collection(col),
	}, nil
}

// WriteStep 写入一个模拟步的数据
// 功能：将该步的完整密度/速度数组组装为一个文档加入缓存
// 参数：run-rollout序号，step-步数，t-仿真时间，dx-元胞宽度，
// density/speed-逐元胞密度与速度
func (s *MongoSink) WriteStep(run, step int, t, dx float64, density, speed []float64) error {
	s.docs = append(s.docs, bson.M{
		"run":     run,
		"step":    step,
		"t":       t,
		"dx":      dx,
		"density": append([]float64(nil), density...),
		"speed":   append([]float64(nil), speed...),
	})
	if len(s.docs) >= mongoBatchSize {
		return s.flush()
	}
	return nil
}

// flush 将缓存中的文档批量插入集合
func (s *MongoSink) flush() error {
	if len(s.docs) == 0 {
		return nil
	}
	if _, err := s.coll.InsertMany(context.Background(), s.docs); err != nil {
		return fmt.Errorf("output: failed to insert documents: %w", err)
	}
	s.docs = s.docs[:0]
	return nil
}

// Close 关闭MongoDB输出
// 功能：插入剩余缓存文档并断开连接
func (s *MongoSink) Close() error {
	flushErr := s.flush()
	if err := s.client.Disconnect(context.Background()); err != nil {
		return fmt.Errorf("output: failed to disconnect from mongodb: %w", err)
	}
	return flushErr
}
